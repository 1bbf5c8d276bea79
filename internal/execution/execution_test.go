package execution

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"tickbot-go/internal/datamodel"
)

func book() *datamodel.OrderDepth {
	var d datamodel.OrderDepth
	d.BuyOrders.Set(10002, 8)
	d.BuyOrders.Set(9996, 20)
	d.SellOrders.Set(10004, -20)
	d.SellOrders.Set(9998, -5)
	return &d
}

func TestExecuteBuyTakesCheapestAskFirst(t *testing.T) {
	var buf bytes.Buffer
	exec := NewExecutor(zerolog.New(&buf))

	trades := exec.Execute("RAINFOREST_RESIN", []datamodel.Order{{Symbol: "RAINFOREST_RESIN", Price: 10004, Quantity: 7}}, book(), 300)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %+v", trades)
	}
	if trades[0].Price != 9998 || trades[0].Quantity != 5 {
		t.Fatalf("unexpected first trade: %+v", trades[0])
	}
	if trades[1].Price != 10004 || trades[1].Quantity != 2 {
		t.Fatalf("unexpected second trade: %+v", trades[1])
	}
	if trades[0].Buyer != datamodel.Submission || trades[0].Seller != "" || trades[0].Timestamp != 300 {
		t.Fatalf("unexpected counterparties: %+v", trades[0])
	}
	if !strings.Contains(buf.String(), "paper fill") {
		t.Fatalf("log does not contain fill: %s", buf.String())
	}
}

func TestExecuteSellRespectsLimitPrice(t *testing.T) {
	exec := NewExecutor(zerolog.Nop())

	trades := exec.Execute("RAINFOREST_RESIN", []datamodel.Order{{Symbol: "RAINFOREST_RESIN", Price: 10000, Quantity: -30}}, book(), 0)
	if len(trades) != 1 {
		t.Fatalf("expected only the 10002 bid to fill, got %+v", trades)
	}
	if trades[0].Price != 10002 || trades[0].Quantity != 8 || trades[0].Seller != datamodel.Submission {
		t.Fatalf("unexpected trade: %+v", trades[0])
	}
}

func TestExecuteConsumesLiquidityAcrossOrders(t *testing.T) {
	exec := NewExecutor(zerolog.Nop())
	depth := book()

	trades := exec.Execute("RAINFOREST_RESIN", []datamodel.Order{
		{Symbol: "RAINFOREST_RESIN", Price: 9998, Quantity: 4},
		{Symbol: "RAINFOREST_RESIN", Price: 9998, Quantity: 4},
	}, depth, 0)
	if len(trades) != 2 || trades[0].Quantity != 4 || trades[1].Quantity != 1 {
		t.Fatalf("expected 4 then 1, got %+v", trades)
	}
	if v, _ := depth.SellOrders.Get(9998); v != -5 {
		t.Fatalf("input book mutated: %d", v)
	}
}

func TestExecuteSkipsForeignAndEmptyOrders(t *testing.T) {
	exec := NewExecutor(zerolog.Nop())
	trades := exec.Execute("RAINFOREST_RESIN", []datamodel.Order{
		{Symbol: "KELP", Price: 99999, Quantity: 1},
		{Symbol: "RAINFOREST_RESIN", Price: 99999, Quantity: 0},
	}, book(), 0)
	if len(trades) != 0 {
		t.Fatalf("expected no trades, got %+v", trades)
	}
	if got := exec.Execute("KELP", nil, nil, 0); got != nil {
		t.Fatalf("expected nil for missing book")
	}
}
