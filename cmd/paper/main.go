package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"tickbot-go/internal/config"
	"tickbot-go/internal/datamodel"
	"tickbot-go/internal/exchange"
	"tickbot-go/internal/metrics"
	"tickbot-go/internal/paper"
	"tickbot-go/internal/strategy"
	"tickbot-go/internal/telemetry"
	"tickbot-go/internal/trader"
	"tickbot-go/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Default()
	if path := os.Getenv("TICKBOT_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			boot := util.NewLogger("info", nil)
			boot.Fatal().Err(err).Str("path", path).Msg("load config")
		}
		cfg = loaded
	}
	if lvl := os.Getenv("TICKBOT_LOG_LEVEL"); lvl != "" {
		cfg.App.LogLevel = lvl
	}
	if raw := os.Getenv("TICKBOT_TICKS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			cfg.Feed.MaxTicks = n
		}
	}

	log := util.NewLogger(cfg.App.LogLevel, nil)

	if cfg.App.MetricsAddr != "" {
		_ = metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tel := telemetry.New(os.Stdout, telemetry.WithMaxLength(cfg.Telemetry.MaxLogLength))
	agent := trader.New(tel, trader.WithConversions(cfg.Trader.Conversions), trader.WithLogger(log))
	limits := make(map[string]int, len(cfg.Products))
	for _, p := range cfg.Products {
		product, err := strategy.Build(strategy.Params{
			Symbol:        p.Symbol,
			Limit:         p.Limit,
			FairValueMode: p.FairValue.Mode,
			FairPrice:     p.FairValue.Price,
		}, tel.Debug())
		if err != nil {
			log.Fatal().Err(err).Msg("build product")
		}
		agent.Register(product)
		limits[p.Symbol] = p.Limit
	}

	opts := []paper.SessionOption{paper.WithSessionLogger(log)}
	if cfg.Paper.FillsPath != "" {
		recorder, err := paper.NewJSONLRecorder(cfg.Paper.FillsPath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Paper.FillsPath).Msg("open fills recorder")
		}
		defer recorder.Close()
		opts = append(opts, paper.WithRecorder(recorder))
	}
	session := paper.NewSession(agent, paper.NewAccount(limits), opts...)

	feed := exchange.NewFeed(cfg.Feed.Provider, log,
		exchange.WithPath(cfg.Feed.Path),
		exchange.WithInterval(time.Duration(cfg.Feed.IntervalMs)*time.Millisecond),
		exchange.WithMaxTicks(cfg.Feed.MaxTicks),
	)
	ticks := make(chan *datamodel.TradingState, 64)
	go func() {
		if err := feed.Run(ctx, ticks); err != nil {
			log.Error().Err(err).Msg("feed stopped")
		}
	}()

	log.Info().Int("policies", agent.Symbols()).Msg("paper engine started")
	marks := make(map[string]decimal.Decimal)
	for state := range ticks {
		state.OrderDepths.Range(func(symbol datamodel.Symbol, depth datamodel.OrderDepth) bool {
			if mid, ok := (strategy.MidPrice{}).FairValue(&depth); ok {
				marks[symbol] = mid
			}
			return true
		})
		result := session.Step(state)
		if len(result.Fills) > 0 {
			log.Debug().Int64("ts", state.Timestamp).Int("fills", len(result.Fills)).Msg("tick traded")
		}
	}

	snap := session.Account().Snapshot(marks)
	for symbol, pos := range snap.Positions {
		log.Info().Str("sym", symbol).Int("qty", pos.Qty).Str("mark", pos.Mark.String()).Msg("final position")
	}
	log.Info().Int("cash", snap.Cash).Str("equity", snap.Equity.String()).Msg("shutting down")
}
