package exchange

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tickbot-go/internal/datamodel"
)

func drain(t *testing.T, feed *Feed) ([]*datamodel.TradingState, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ticks := make(chan *datamodel.TradingState, 4)
	errc := make(chan error, 1)
	go func() { errc <- feed.Run(ctx, ticks) }()

	var out []*datamodel.TradingState
	for tk := range ticks {
		out = append(out, tk)
	}
	return out, <-errc
}

func TestStubFeedStopsAfterMaxTicks(t *testing.T) {
	feed := NewFeed(ProviderStub, zerolog.Nop(), WithMaxTicks(5))
	ticks, err := drain(t, feed)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(ticks) != 5 {
		t.Fatalf("expected 5 ticks, got %d", len(ticks))
	}
	for i, tk := range ticks {
		if tk.Timestamp != int64(i)*100 {
			t.Fatalf("unexpected timestamp %d at %d", tk.Timestamp, i)
		}
		keys := tk.OrderDepths.Keys()
		if len(keys) != 2 || keys[0] != "RAINFOREST_RESIN" || keys[1] != "KELP" {
			t.Fatalf("unexpected symbols %v", keys)
		}
	}
}

func TestStubStateOffersEdgeThroughResinCenter(t *testing.T) {
	depth, ok := StubState(3).Depth("RAINFOREST_RESIN")
	if !ok {
		t.Fatalf("missing resin book")
	}
	if ask, _, _ := depth.BestAsk(); ask >= ResinCenter {
		t.Fatalf("expected ask below center, got %d", ask)
	}
	depth, _ = StubState(1).Depth("RAINFOREST_RESIN")
	if bid, _, _ := depth.BestBid(); bid <= ResinCenter {
		t.Fatalf("expected bid above center, got %d", bid)
	}
	kelp, _ := StubState(0).Depth("KELP")
	bid, _, _ := kelp.BestBid()
	ask, _, _ := kelp.BestAsk()
	if bid >= ask {
		t.Fatalf("kelp book crossed: %d/%d", bid, ask)
	}
}

func TestStubFeedHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	feed := NewFeed("", zerolog.Nop(), WithInterval(10*time.Millisecond))
	ticks := make(chan *datamodel.TradingState)
	errc := make(chan error, 1)
	go func() { errc <- feed.Run(ctx, ticks) }()

	select {
	case <-ticks:
		cancel()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
	}
	if err := <-errc; err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFileFeedReplaysStates(t *testing.T) {
	feed := NewFeed(ProviderFile, zerolog.Nop(), WithPath(filepath.Join("testdata", "ticks.jsonl")))
	ticks, err := drain(t, feed)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(ticks) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(ticks))
	}
	if keys := ticks[1].OrderDepths.Keys(); len(keys) != 2 || keys[0] != "KELP" {
		t.Fatalf("expected file order preserved, got %v", keys)
	}
	depth, _ := ticks[0].Depth("RAINFOREST_RESIN")
	if ask, vol, _ := depth.BestAsk(); ask != 9998 || vol != 5 {
		t.Fatalf("unexpected best ask %d x %d", ask, vol)
	}
	trades, _ := ticks[1].MarketTrades.Get("KELP")
	if len(trades) != 1 || trades[0].Buyer != "A" {
		t.Fatalf("unexpected market trades %+v", trades)
	}
}

func TestFileFeedMaxTicks(t *testing.T) {
	feed := NewFeed(ProviderFile, zerolog.Nop(), WithPath(filepath.Join("testdata", "ticks.jsonl")), WithMaxTicks(1))
	ticks, err := drain(t, feed)
	if err != nil || len(ticks) != 1 {
		t.Fatalf("expected 1 tick, got %d (%v)", len(ticks), err)
	}
}

func TestFileFeedErrors(t *testing.T) {
	if _, err := drain(t, NewFeed(ProviderFile, zerolog.Nop(), WithPath(filepath.Join("testdata", "broken.jsonl")))); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := drain(t, NewFeed(ProviderFile, zerolog.Nop())); err == nil {
		t.Fatalf("expected missing path error")
	}
	if _, err := drain(t, NewFeed("binance", zerolog.Nop())); err == nil {
		t.Fatalf("expected unknown provider error")
	}
}
