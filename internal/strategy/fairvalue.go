package strategy

import (
	"github.com/shopspring/decimal"

	"tickbot-go/internal/datamodel"
)

// FairValue estimates a symbol's true price from its current book.
// ok is false when the estimator has no belief, in which case the policy stays out.
type FairValue interface {
	FairValue(depth *datamodel.OrderDepth) (price decimal.Decimal, ok bool)
}

// FairValueFunc adapts a function to FairValue.
type FairValueFunc func(depth *datamodel.OrderDepth) (decimal.Decimal, bool)

// FairValue calls f.
func (f FairValueFunc) FairValue(depth *datamodel.OrderDepth) (decimal.Decimal, bool) {
	return f(depth)
}

// Fixed believes in a constant price regardless of the book.
type Fixed struct {
	Price decimal.Decimal
}

// FairValue returns the constant.
func (f Fixed) FairValue(*datamodel.OrderDepth) (decimal.Decimal, bool) {
	return f.Price, true
}

// MidPrice believes in the midpoint of the best bid and best ask.
type MidPrice struct{}

var two = decimal.NewFromInt(2)

// FairValue needs both sides of the book.
func (MidPrice) FairValue(depth *datamodel.OrderDepth) (decimal.Decimal, bool) {
	bid, _, okBid := depth.BestBid()
	ask, _, okAsk := depth.BestAsk()
	if !okBid || !okAsk {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(bid) + int64(ask)).Div(two), true
}

// None never has a belief.
type None struct{}

// FairValue always reports no belief.
func (None) FairValue(*datamodel.OrderDepth) (decimal.Decimal, bool) {
	return decimal.Zero, false
}
