package paper

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"tickbot-go/internal/datamodel"
	"tickbot-go/internal/risk"
)

// FillRecorder captures paper fills for later inspection.
type FillRecorder interface {
	Record(datamodel.Trade)
}

// Account tracks virtual cash and per-symbol signed positions while trading in paper mode.
// Symbols without a configured limit cannot be traded.
type Account struct {
	mu        sync.Mutex
	cash      int
	limits    map[datamodel.Symbol]risk.Limits
	positions datamodel.OrderedMap[datamodel.Symbol, int]
}

// PositionSnapshot exposes a read-only view of a single symbol position.
type PositionSnapshot struct {
	Qty         int
	Mark        decimal.Decimal
	MarketValue decimal.Decimal
}

// Snapshot represents a view of the account state marked to market using provided prices.
type Snapshot struct {
	Cash      int
	Equity    decimal.Decimal
	Positions map[datamodel.Symbol]PositionSnapshot
}

// NewAccount constructs a flat account with per-symbol position limits.
func NewAccount(limits map[datamodel.Symbol]int) *Account {
	a := &Account{limits: make(map[datamodel.Symbol]risk.Limits, len(limits))}
	for symbol, limit := range limits {
		a.limits[symbol] = risk.Limits{MaxPosition: limit}
	}
	return a
}

// Check reports whether a symbol's order batch stays within its limit if every order fills.
func (a *Account) Check(symbol datamodel.Symbol, orders []datamodel.Order) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	pos, _ := a.positions.Get(symbol)
	return a.limits[symbol].Allow(pos, orders)
}

// Apply books a trade in which the agent is buyer or seller.
func (a *Account) Apply(trade datamodel.Trade) error {
	if trade.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	var delta int
	switch {
	case trade.Buyer == datamodel.Submission:
		delta = trade.Quantity
	case trade.Seller == datamodel.Submission:
		delta = -trade.Quantity
	default:
		return errors.Errorf("trade on %s does not involve the agent", trade.Symbol)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	limit := a.limits[trade.Symbol].MaxPosition
	pos, _ := a.positions.Get(trade.Symbol)
	next := pos + delta
	if next > limit || next < -limit {
		return errors.Errorf("position limit exceeded for %s: %d", trade.Symbol, next)
	}
	a.positions.Set(trade.Symbol, next)
	a.cash -= delta * trade.Price
	return nil
}

// Position returns the current position size for the supplied symbol.
func (a *Account) Position(symbol datamodel.Symbol) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	pos, _ := a.positions.Get(symbol)
	return pos
}

// Positions returns a copy of every position in the order symbols were first traded.
func (a *Account) Positions() datamodel.OrderedMap[datamodel.Symbol, int] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.positions.Clone()
}

// Cash returns the running cash balance; it starts at zero and goes negative when buying.
func (a *Account) Cash() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cash
}

// Snapshot returns a copy of balances marked at the supplied prices. Unmarked positions carry no value.
func (a *Account) Snapshot(marks map[datamodel.Symbol]decimal.Decimal) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	positions := make(map[datamodel.Symbol]PositionSnapshot, a.positions.Len())
	equity := decimal.NewFromInt(int64(a.cash))
	a.positions.Range(func(symbol datamodel.Symbol, qty int) bool {
		mark, ok := marks[symbol]
		if !ok {
			mark = decimal.Zero
		}
		value := mark.Mul(decimal.NewFromInt(int64(qty)))
		positions[symbol] = PositionSnapshot{Qty: qty, Mark: mark, MarketValue: value}
		equity = equity.Add(value)
		return true
	})

	return Snapshot{Cash: a.cash, Equity: equity, Positions: positions}
}
