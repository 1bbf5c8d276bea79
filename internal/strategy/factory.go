package strategy

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

const (
	ModeFixed = "fixed"
	ModeMid   = "mid"
	ModeNone  = "none"
)

// Params expresses what a product policy needs to be built.
type Params struct {
	Symbol        string
	Limit         int
	FairValueMode string
	FairPrice     string
}

// BuildFairValue returns the estimator matching mode. price is only read by fixed.
func BuildFairValue(mode, price string) (FairValue, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeNone:
		return None{}, nil
	case ModeFixed:
		p, err := decimal.NewFromString(strings.TrimSpace(price))
		if err != nil {
			return nil, errors.Wrap(err, "parse fixed fair price")
		}
		return Fixed{Price: p}, nil
	case ModeMid, "mid_price", "midprice":
		return MidPrice{}, nil
	default:
		return nil, errors.Errorf("unknown fair value mode %q", mode)
	}
}

// Build returns a product policy for params.
func Build(params Params, log zerolog.Logger) (*Product, error) {
	if strings.TrimSpace(params.Symbol) == "" {
		return nil, errors.New("empty symbol")
	}
	if params.Limit <= 0 {
		return nil, errors.Errorf("limit for %s must be positive, got %d", params.Symbol, params.Limit)
	}
	fair, err := BuildFairValue(params.FairValueMode, params.FairPrice)
	if err != nil {
		return nil, errors.Wrap(err, "build fair value for "+params.Symbol)
	}
	return NewProduct(params.Symbol, params.Limit, fair, log), nil
}
