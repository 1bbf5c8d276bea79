package strategy

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFairValue(t *testing.T) {
	fair, err := BuildFairValue("fixed", "10000")
	require.NoError(t, err)
	fixed, ok := fair.(Fixed)
	require.True(t, ok)
	assert.True(t, fixed.Price.Equal(decimal.NewFromInt(10000)))

	fair, err = BuildFairValue(" MID ", "")
	require.NoError(t, err)
	assert.IsType(t, MidPrice{}, fair)

	fair, err = BuildFairValue("", "")
	require.NoError(t, err)
	assert.IsType(t, None{}, fair)

	_, err = BuildFairValue("fixed", "ten thousand")
	assert.Error(t, err)

	_, err = BuildFairValue("obi", "")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	p, err := Build(Params{Symbol: "SQUID_INK", Limit: 50, FairValueMode: "mid"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "SQUID_INK", p.Symbol())
	assert.Equal(t, 50, p.Limits().MaxPosition)

	_, err = Build(Params{Symbol: "", Limit: 50}, zerolog.Nop())
	assert.Error(t, err)

	_, err = Build(Params{Symbol: "KELP", Limit: 0}, zerolog.Nop())
	assert.Error(t, err)
}
