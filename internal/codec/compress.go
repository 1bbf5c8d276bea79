// Package codec flattens tick records into fixed-order positional arrays for the telemetry line.
//
// Every record becomes an array instead of a keyed object so field names are never repeated.
// Mappings keep the insertion order of their input, which lets consumers correlate arrays that
// share a symbol ordering.
package codec

import "tickbot-go/internal/datamodel"

// CompressedDepth is [buyOrders, sellOrders] with each side left as its raw price->quantity mapping.
type CompressedDepth [2]datamodel.Levels

// CompressedObservation is [bid, ask, transportFee, exportTariff, importTariff, sugarPrice, sunlightIndex].
type CompressedObservation [7]float64

// CompressState returns [timestamp, traderData, listings, orderDepths, ownTrades, marketTrades, position, observations].
// traderData replaces the state's own trader data so the caller can pass a truncated copy.
func CompressState(state *datamodel.TradingState, traderData string) []any {
	if state == nil {
		state = &datamodel.TradingState{}
	}
	return []any{
		state.Timestamp,
		traderData,
		CompressListings(state.Listings),
		CompressOrderDepths(state.OrderDepths),
		CompressTrades(state.OwnTrades),
		CompressTrades(state.MarketTrades),
		state.Position,
		CompressObservations(state.Observations),
	}
}

// CompressListings returns one [symbol, product, denomination] per listing.
func CompressListings(listings datamodel.OrderedMap[datamodel.Symbol, datamodel.Listing]) [][3]string {
	out := make([][3]string, 0, listings.Len())
	listings.Range(func(_ datamodel.Symbol, l datamodel.Listing) bool {
		out = append(out, [3]string{l.Symbol, l.Product, l.Denomination})
		return true
	})
	return out
}

// CompressOrderDepths maps each symbol to [buyOrders, sellOrders].
func CompressOrderDepths(depths datamodel.OrderedMap[datamodel.Symbol, datamodel.OrderDepth]) datamodel.OrderedMap[datamodel.Symbol, CompressedDepth] {
	out := datamodel.NewOrderedMap[datamodel.Symbol, CompressedDepth](depths.Len())
	depths.Range(func(symbol datamodel.Symbol, d datamodel.OrderDepth) bool {
		out.Set(symbol, CompressedDepth{d.BuyOrders, d.SellOrders})
		return true
	})
	return out
}

// CompressTrades concatenates every symbol's trades as [symbol, price, quantity, buyer, seller, timestamp].
func CompressTrades(trades datamodel.OrderedMap[datamodel.Symbol, []datamodel.Trade]) [][]any {
	out := make([][]any, 0)
	trades.Range(func(_ datamodel.Symbol, arr []datamodel.Trade) bool {
		for _, tr := range arr {
			out = append(out, []any{tr.Symbol, tr.Price, tr.Quantity, tr.Buyer, tr.Seller, tr.Timestamp})
		}
		return true
	})
	return out
}

// CompressObservations returns [plainValues, conversionObservations].
func CompressObservations(obs datamodel.Observation) []any {
	conversions := datamodel.NewOrderedMap[datamodel.Product, CompressedObservation](obs.ConversionObservations.Len())
	obs.ConversionObservations.Range(func(product datamodel.Product, o datamodel.ConversionObservation) bool {
		conversions.Set(product, CompressedObservation{
			o.BidPrice,
			o.AskPrice,
			o.TransportFees,
			o.ExportTariff,
			o.ImportTariff,
			o.SugarPrice,
			o.SunlightIndex,
		})
		return true
	})
	return []any{obs.PlainValueObservations, conversions}
}

// CompressOrders concatenates every symbol's orders as [symbol, price, quantity].
func CompressOrders(orders datamodel.Orders) [][]any {
	out := make([][]any, 0)
	orders.Range(func(_ datamodel.Symbol, arr []datamodel.Order) bool {
		for _, o := range arr {
			out = append(out, []any{o.Symbol, o.Price, o.Quantity})
		}
		return true
	})
	return out
}

// DecompressOrderDepths is the inverse of CompressOrderDepths.
func DecompressOrderDepths(compressed datamodel.OrderedMap[datamodel.Symbol, CompressedDepth]) datamodel.OrderedMap[datamodel.Symbol, datamodel.OrderDepth] {
	out := datamodel.NewOrderedMap[datamodel.Symbol, datamodel.OrderDepth](compressed.Len())
	compressed.Range(func(symbol datamodel.Symbol, c CompressedDepth) bool {
		out.Set(symbol, datamodel.OrderDepth{BuyOrders: c[0], SellOrders: c[1]})
		return true
	})
	return out
}
