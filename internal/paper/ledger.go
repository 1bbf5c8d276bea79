package paper

import (
	"sync"

	"tickbot-go/internal/datamodel"
)

// Ledger stores paper fills in memory so the next tick can report them as own trades.
type Ledger struct {
	mu    sync.Mutex
	fills []datamodel.Trade
}

// NewLedger creates an empty ledger optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{fills: make([]datamodel.Trade, 0, capacity)}
}

// Record appends a fill to the ledger.
func (l *Ledger) Record(fill datamodel.Trade) {
	l.mu.Lock()
	l.fills = append(l.fills, fill)
	l.mu.Unlock()
}

// Snapshot returns a copy of the recorded fills.
func (l *Ledger) Snapshot() []datamodel.Trade {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]datamodel.Trade, len(l.fills))
	copy(out, l.fills)
	return out
}

// At groups the fills stamped with timestamp by symbol, in fill order.
func (l *Ledger) At(timestamp int64) datamodel.OrderedMap[datamodel.Symbol, []datamodel.Trade] {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out datamodel.OrderedMap[datamodel.Symbol, []datamodel.Trade]
	for _, fill := range l.fills {
		if fill.Timestamp != timestamp {
			continue
		}
		trades, _ := out.Get(fill.Symbol)
		out.Set(fill.Symbol, append(trades, fill))
	}
	return out
}

// Reset clears all stored fills.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.fills = l.fills[:0]
	l.mu.Unlock()
}
