// Package datamodel standardizes the tick payloads exchanged between the host and the trading agent.
package datamodel

// Symbol identifies a tradable listing.
type Symbol = string

// Product identifies the underlying good a listing trades.
type Product = string

// Submission is the buyer/seller id the host assigns to the agent's own side of a trade.
const Submission = "SUBMISSION"

// Listing describes a tradable symbol.
type Listing struct {
	Symbol       Symbol  `json:"symbol"`
	Product      Product `json:"product"`
	Denomination Product `json:"denomination"`
}

// Levels maps price to resting quantity for one side of a book.
type Levels = OrderedMap[int, int]

// OrderDepth is the resting liquidity for a symbol.
// Buy quantities are positive; sell quantities are negative with magnitude equal to the size available.
type OrderDepth struct {
	BuyOrders  Levels `json:"buy_orders"`
	SellOrders Levels `json:"sell_orders"`
}

// BestBid returns the highest buy price and its (positive) volume.
func (d *OrderDepth) BestBid() (price, volume int, ok bool) {
	if d == nil {
		return 0, 0, false
	}
	d.BuyOrders.Range(func(p, q int) bool {
		if !ok || p > price {
			price, volume, ok = p, q, true
		}
		return true
	})
	return price, volume, ok
}

// BestAsk returns the lowest sell price and its volume as a positive number.
func (d *OrderDepth) BestAsk() (price, volume int, ok bool) {
	if d == nil {
		return 0, 0, false
	}
	d.SellOrders.Range(func(p, q int) bool {
		if !ok || p < price {
			price, volume, ok = p, -q, true
		}
		return true
	})
	return price, volume, ok
}

// Trade is a historical fill. It is never used for decisions, only for telemetry.
type Trade struct {
	Symbol    Symbol `json:"symbol"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Buyer     string `json:"buyer"`
	Seller    string `json:"seller"`
	Timestamp int64  `json:"timestamp"`
}

// Order is a request to trade. Positive quantity buys, negative quantity sells.
type Order struct {
	Symbol   Symbol `json:"symbol"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// ConversionObservation is the conversion-market quote published for some products.
type ConversionObservation struct {
	BidPrice      float64 `json:"bidPrice"`
	AskPrice      float64 `json:"askPrice"`
	TransportFees float64 `json:"transportFees"`
	ExportTariff  float64 `json:"exportTariff"`
	ImportTariff  float64 `json:"importTariff"`
	SugarPrice    float64 `json:"sugarPrice"`
	SunlightIndex float64 `json:"sunlightIndex"`
}

// Observation carries per-product plain values and conversion quotes.
type Observation struct {
	PlainValueObservations OrderedMap[Product, int]                   `json:"plainValueObservations"`
	ConversionObservations OrderedMap[Product, ConversionObservation] `json:"conversionObservations"`
}

// Orders is the agent's per-tick answer, keyed by symbol in the order the symbols were decided.
type Orders = OrderedMap[Symbol, []Order]

// TradingState is one tick as delivered by the host. It is read-only for the agent.
type TradingState struct {
	Timestamp    int64                          `json:"timestamp"`
	TraderData   string                         `json:"traderData"`
	Listings     OrderedMap[Symbol, Listing]    `json:"listings"`
	OrderDepths  OrderedMap[Symbol, OrderDepth] `json:"order_depths"`
	OwnTrades    OrderedMap[Symbol, []Trade]    `json:"own_trades"`
	MarketTrades OrderedMap[Symbol, []Trade]    `json:"market_trades"`
	Position     OrderedMap[Product, int]       `json:"position"`
	Observations Observation                    `json:"observations"`
}

// PositionOf returns the signed inventory for symbol, zero when absent.
func (s *TradingState) PositionOf(symbol Symbol) int {
	if s == nil {
		return 0
	}
	pos, _ := s.Position.Get(symbol)
	return pos
}

// Depth returns the order depth for symbol.
func (s *TradingState) Depth(symbol Symbol) (*OrderDepth, bool) {
	if s == nil {
		return nil, false
	}
	depth, ok := s.OrderDepths.Get(symbol)
	if !ok {
		return nil, false
	}
	return &depth, true
}
