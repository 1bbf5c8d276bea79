package strategy

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	RainforestResin = "RAINFOREST_RESIN"
	Kelp            = "KELP"

	// DefaultLimit is the position limit of both tutorial products.
	DefaultLimit = 50
)

// NewRainforestResin trades around a stable fair value of 10000.
func NewRainforestResin(log zerolog.Logger) *Product {
	return NewProduct(RainforestResin, DefaultLimit, Fixed{Price: decimal.NewFromInt(10_000)}, log)
}

// NewKelp has no fair-value belief yet and so never trades.
func NewKelp(log zerolog.Logger) *Product {
	return NewProduct(Kelp, DefaultLimit, None{}, log)
}
