// Package risk bounds order size by a symbol's signed position limit.
package risk

import "tickbot-go/internal/datamodel"

// Limits caps absolute inventory for one symbol.
type Limits struct {
	MaxPosition int
}

// BuyCapacity is the most that can still be bought without exceeding the limit.
func (l Limits) BuyCapacity(position int) int {
	return l.MaxPosition - position
}

// SellCapacity is the most that can still be sold without going below -limit.
func (l Limits) SellCapacity(position int) int {
	return l.MaxPosition + position
}

// Allow reports whether orders keep position within [-limit, limit] even if every buy
// or every sell fills completely.
func (l Limits) Allow(position int, orders []datamodel.Order) bool {
	var bought, sold int
	for _, o := range orders {
		if o.Quantity > 0 {
			bought += o.Quantity
		} else {
			sold -= o.Quantity
		}
	}
	if bought > 0 && bought > l.BuyCapacity(position) {
		return false
	}
	if sold > 0 && sold > l.SellCapacity(position) {
		return false
	}
	return true
}
