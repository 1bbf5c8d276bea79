// Package strategy turns a symbol's book and a fair-value belief into position-bounded orders.
package strategy

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tickbot-go/internal/datamodel"
	"tickbot-go/internal/risk"
)

// Policy decides orders for one symbol each tick.
type Policy interface {
	Symbol() datamodel.Symbol
	// Refresh loads the policy's position from the tick. It runs before Decide.
	Refresh(state *datamodel.TradingState)
	Decide(state *datamodel.TradingState) []datamodel.Order
}

// Product takes liquidity that is mispriced against its fair value, never posting passive orders.
type Product struct {
	symbol   datamodel.Symbol
	limits   risk.Limits
	position int
	fair     FairValue
	log      zerolog.Logger
}

// NewProduct builds a policy for symbol with a position limit and fair-value estimator.
// A nil estimator behaves like None.
func NewProduct(symbol datamodel.Symbol, limit int, fair FairValue, log zerolog.Logger) *Product {
	if fair == nil {
		fair = None{}
	}
	return &Product{
		symbol: symbol,
		limits: risk.Limits{MaxPosition: limit},
		fair:   fair,
		log:    log,
	}
}

// Symbol returns the symbol the policy trades.
func (p *Product) Symbol() datamodel.Symbol { return p.symbol }

// Limits returns the position limit.
func (p *Product) Limits() risk.Limits { return p.limits }

// Position returns the position loaded by the last Refresh.
func (p *Product) Position() int { return p.position }

// Refresh sets the position from the tick, zero when the symbol is absent.
func (p *Product) Refresh(state *datamodel.TradingState) {
	p.position = state.PositionOf(p.symbol)
}

// Decide buys the best ask when it is below fair value and sells the best bid when it is above,
// each clipped so a full fill keeps the position within the limit.
func (p *Product) Decide(state *datamodel.TradingState) []datamodel.Order {
	depth, ok := state.Depth(p.symbol)
	if !ok {
		return nil
	}
	fair, ok := p.fair.FairValue(depth)
	if !ok {
		return nil
	}

	orders := make([]datamodel.Order, 0, 2)
	if ask, volume, ok := depth.BestAsk(); ok && decimal.NewFromInt(int64(ask)).LessThan(fair) {
		if qty := min(volume, p.limits.BuyCapacity(p.position)); qty > 0 {
			p.log.Debug().Str("symbol", p.symbol).Int("qty", qty).Int("price", ask).Msg("buying")
			orders = append(orders, datamodel.Order{Symbol: p.symbol, Price: ask, Quantity: qty})
		}
	}
	if bid, volume, ok := depth.BestBid(); ok && decimal.NewFromInt(int64(bid)).GreaterThan(fair) {
		if qty := min(volume, p.limits.SellCapacity(p.position)); qty > 0 {
			p.log.Debug().Str("symbol", p.symbol).Int("qty", qty).Int("price", bid).Msg("selling")
			orders = append(orders, datamodel.Order{Symbol: p.symbol, Price: bid, Quantity: -qty})
		}
	}
	return orders
}
