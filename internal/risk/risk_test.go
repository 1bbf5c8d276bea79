package risk

import (
	"testing"

	"tickbot-go/internal/datamodel"
)

func TestCapacity(t *testing.T) {
	limits := Limits{MaxPosition: 50}
	if got := limits.BuyCapacity(48); got != 2 {
		t.Fatalf("expected buy capacity 2, got %d", got)
	}
	if got := limits.SellCapacity(45); got != 95 {
		t.Fatalf("expected sell capacity 95, got %d", got)
	}
	if got := limits.SellCapacity(-50); got != 0 {
		t.Fatalf("expected no sell capacity at -limit, got %d", got)
	}
}

func TestAllow(t *testing.T) {
	limits := Limits{MaxPosition: 50}
	orders := []datamodel.Order{
		{Symbol: "KELP", Price: 2020, Quantity: 30},
		{Symbol: "KELP", Price: 2019, Quantity: 20},
		{Symbol: "KELP", Price: 2024, Quantity: -40},
	}
	if !limits.Allow(0, orders) {
		t.Fatalf("expected orders inside headroom to pass")
	}
	if limits.Allow(1, orders) {
		t.Fatalf("expected buys above headroom to fail")
	}
	if limits.Allow(-11, orders) {
		t.Fatalf("expected sells below -limit to fail")
	}
	if !limits.Allow(60, nil) {
		t.Fatalf("expected no orders to always pass")
	}
}
