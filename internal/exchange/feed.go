// Package exchange hosts tick sources for the paper host.
package exchange

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/yanun0323/errors"

	"tickbot-go/internal/datamodel"
)

const (
	// ProviderStub emits deterministic synthetic books (useful for tests/offline work).
	ProviderStub = "stub"
	// ProviderFile replays trading states recorded one JSON object per line.
	ProviderFile = "file"
)

// Stub book centers.
const (
	ResinCenter = 10000
	KelpCenter  = 2020
)

const (
	timestampStep   = 100
	maxLineBytes    = 4 << 20
	denominationSym = "SEASHELLS"
)

// Feed represents a pluggable tick stream implementation.
type Feed struct {
	provider string
	path     string
	interval time.Duration
	maxTicks int
	log      zerolog.Logger
}

// Option configures Feed construction parameters.
type Option func(*Feed)

// WithInterval paces ticks; zero emits as fast as the consumer reads.
func WithInterval(d time.Duration) Option {
	return func(f *Feed) {
		if d >= 0 {
			f.interval = d
		}
	}
}

// WithMaxTicks stops the feed after n ticks; zero means unbounded for the stub
// and end-of-file for the file provider.
func WithMaxTicks(n int) Option {
	return func(f *Feed) {
		if n >= 0 {
			f.maxTicks = n
		}
	}
}

// WithPath sets the JSONL file replayed by ProviderFile.
func WithPath(path string) Option {
	return func(f *Feed) { f.path = strings.TrimSpace(path) }
}

// NewFeed constructs a feed backed by the requested provider.
func NewFeed(provider string, log zerolog.Logger, opts ...Option) *Feed {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = ProviderStub
	}
	f := &Feed{provider: provider, log: log}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run pushes ticks onto out until the source is exhausted or the context is canceled.
// out is closed when Run returns.
func (f *Feed) Run(ctx context.Context, out chan<- *datamodel.TradingState) error {
	defer close(out)
	switch f.provider {
	case ProviderStub:
		return f.runStub(ctx, out)
	case ProviderFile:
		return f.runFile(ctx, out)
	default:
		return errors.Errorf("unknown feed provider %q", f.provider)
	}
}

func (f *Feed) emit(ctx context.Context, out chan<- *datamodel.TradingState, state *datamodel.TradingState, pace <-chan time.Time) error {
	if pace != nil {
		select {
		case <-pace:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	select {
	case out <- state:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Feed) pacer() (<-chan time.Time, func()) {
	if f.interval <= 0 {
		return nil, func() {}
	}
	ticker := time.NewTicker(f.interval)
	return ticker.C, ticker.Stop
}

func (f *Feed) runStub(ctx context.Context, out chan<- *datamodel.TradingState) error {
	pace, stop := f.pacer()
	defer stop()

	for i := 0; f.maxTicks == 0 || i < f.maxTicks; i++ {
		if err := f.emit(ctx, out, StubState(i), pace); err != nil {
			return err
		}
	}
	f.log.Info().Int("ticks", f.maxTicks).Msg("stub feed exhausted")
	return nil
}

func (f *Feed) runFile(ctx context.Context, out chan<- *datamodel.TradingState) error {
	if f.path == "" {
		return errors.New("file feed needs a path")
	}
	file, err := os.Open(f.path)
	if err != nil {
		return errors.Wrap(err, "open tick file")
	}
	defer file.Close()

	pace, stop := f.pacer()
	defer stop()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var line, sent int
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		state := &datamodel.TradingState{}
		if err := sonic.ConfigDefault.UnmarshalFromString(raw, state); err != nil {
			return errors.Wrap(err, fmt.Sprintf("decode tick at line %d", line))
		}
		if err := f.emit(ctx, out, state, pace); err != nil {
			return err
		}
		sent++
		if f.maxTicks > 0 && sent >= f.maxTicks {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read tick file")
	}
	f.log.Info().Str("path", f.path).Int("ticks", sent).Msg("file feed exhausted")
	return nil
}

// StubState returns the i-th synthetic tick. RAINFOREST_RESIN quotes around ResinCenter and
// periodically offers liquidity through it; KELP drifts in a band around KelpCenter.
func StubState(i int) *datamodel.TradingState {
	state := &datamodel.TradingState{Timestamp: int64(i) * timestampStep}
	for _, symbol := range []string{"RAINFOREST_RESIN", "KELP"} {
		state.Listings.Set(symbol, datamodel.Listing{Symbol: symbol, Product: symbol, Denomination: denominationSym})
	}

	var resin datamodel.OrderDepth
	bid, ask := ResinCenter-4, ResinCenter+4
	if i%7 == 3 {
		ask = ResinCenter - 2
	}
	if i%5 == 1 {
		bid = ResinCenter + 2
	}
	resin.BuyOrders.Set(bid, 1+i%9)
	resin.BuyOrders.Set(ResinCenter-5, 25)
	resin.SellOrders.Set(ask, -(1 + i%6))
	resin.SellOrders.Set(ResinCenter+5, -25)
	state.OrderDepths.Set("RAINFOREST_RESIN", resin)

	var kelp datamodel.OrderDepth
	mid := KelpCenter + (i%10 - 5)
	kelp.BuyOrders.Set(mid-1, 10+i%4)
	kelp.SellOrders.Set(mid+2, -(10 + i%3))
	state.OrderDepths.Set("KELP", kelp)
	return state
}
