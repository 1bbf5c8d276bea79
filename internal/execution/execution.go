// Package execution matches agent orders against the resting liquidity of a tick.
package execution

import (
	"sort"

	"github.com/rs/zerolog"

	"tickbot-go/internal/datamodel"
	"tickbot-go/internal/metrics"
)

// Executor crosses orders with the book the way the host's matching engine does:
// a buy takes every ask priced at or below its limit, best price first, and fills at the resting price.
type Executor struct{ log zerolog.Logger }

// NewExecutor wraps a zerolog logger for fill reporting.
func NewExecutor(log zerolog.Logger) *Executor { return &Executor{log: log} }

// Execute matches a symbol's orders against a copy of depth and returns the resulting trades.
// Liquidity consumed by one order is no longer available to the next.
func (executor *Executor) Execute(symbol datamodel.Symbol, orders []datamodel.Order, depth *datamodel.OrderDepth, timestamp int64) []datamodel.Trade {
	if depth == nil || len(orders) == 0 {
		return nil
	}
	book := datamodel.OrderDepth{
		BuyOrders:  depth.BuyOrders.Clone(),
		SellOrders: depth.SellOrders.Clone(),
	}

	var trades []datamodel.Trade
	for _, order := range orders {
		if order.Symbol != symbol || order.Quantity == 0 {
			executor.log.Warn().Str("sym", symbol).Str("order_sym", order.Symbol).Int("qty", order.Quantity).Msg("skip order")
			continue
		}
		fills := match(&book, order, timestamp)
		for _, fill := range fills {
			metrics.FillsTotal.WithLabelValues(symbol, metrics.Side(order.Quantity)).Inc()
			executor.log.Info().Str("sym", symbol).Int("px", fill.Price).Int("qty", fill.Quantity).Str("side", metrics.Side(order.Quantity)).Msg("paper fill")
		}
		trades = append(trades, fills...)
	}
	return trades
}

func match(book *datamodel.OrderDepth, order datamodel.Order, timestamp int64) []datamodel.Trade {
	var (
		levels    *datamodel.Levels
		remaining = order.Quantity
		crosses   func(price int) bool
	)
	if order.Quantity > 0 {
		levels = &book.SellOrders
		crosses = func(price int) bool { return price <= order.Price }
	} else {
		levels = &book.BuyOrders
		remaining = -order.Quantity
		crosses = func(price int) bool { return price >= order.Price }
	}

	prices := levels.Keys()
	sort.Ints(prices)
	if order.Quantity < 0 {
		sort.Sort(sort.Reverse(sort.IntSlice(prices)))
	}

	var trades []datamodel.Trade
	for _, price := range prices {
		if remaining == 0 || !crosses(price) {
			break
		}
		resting, _ := levels.Get(price)
		available := resting
		if available < 0 {
			available = -available
		}
		qty := min(remaining, available)
		if qty == 0 {
			continue
		}
		remaining -= qty

		trade := datamodel.Trade{Symbol: order.Symbol, Price: price, Quantity: qty, Timestamp: timestamp}
		if order.Quantity > 0 {
			trade.Buyer = datamodel.Submission
			levels.Set(price, resting+qty)
		} else {
			trade.Seller = datamodel.Submission
			levels.Set(price, resting-qty)
		}
		if left, _ := levels.Get(price); left == 0 {
			levels.Delete(price)
		}
		trades = append(trades, trade)
	}
	return trades
}
