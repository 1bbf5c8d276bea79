// Package trader dispatches each tick to the registered product policies and emits telemetry.
package trader

import (
	"github.com/rs/zerolog"

	"tickbot-go/internal/datamodel"
	"tickbot-go/internal/metrics"
	"tickbot-go/internal/risk"
	"tickbot-go/internal/strategy"
	"tickbot-go/internal/telemetry"
)

// DefaultConversions is returned to the host every tick unless overridden.
const DefaultConversions = 1

// bounded is implemented by policies whose output can be checked against a position limit.
type bounded interface {
	Limits() risk.Limits
	Position() int
}

// Trader owns the symbol->policy registry and the telemetry logger.
type Trader struct {
	policies    map[datamodel.Symbol]strategy.Policy
	telemetry   *telemetry.Logger
	conversions int
	log         zerolog.Logger
}

// Option configures a Trader.
type Option func(*Trader)

// WithConversions overrides DefaultConversions.
func WithConversions(n int) Option {
	return func(t *Trader) { t.conversions = n }
}

// WithLogger sets the diagnostics logger. Diagnostics never go to the telemetry line.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Trader) { t.log = log }
}

// New returns a Trader with no policies registered.
func New(tel *telemetry.Logger, opts ...Option) *Trader {
	if tel == nil {
		tel = telemetry.New(nil)
	}
	t := &Trader{
		policies:    make(map[datamodel.Symbol]strategy.Policy),
		telemetry:   tel,
		conversions: DefaultConversions,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register adds policies keyed by their symbol, replacing any previous policy for that symbol.
func (t *Trader) Register(policies ...strategy.Policy) {
	for _, p := range policies {
		if p == nil {
			continue
		}
		t.policies[p.Symbol()] = p
	}
}

// Symbols returns the number of registered policies.
func (t *Trader) Symbols() int { return len(t.policies) }

// Run decides one tick. Every symbol in the tick's order depths is offered to its policy;
// symbols without one are skipped. Telemetry is flushed last.
func (t *Trader) Run(state *datamodel.TradingState) (datamodel.Orders, int, string) {
	if state == nil {
		state = &datamodel.TradingState{}
	}
	memory := LoadMemory(state.TraderData)
	memory.Ticks++

	result := datamodel.NewOrderedMap[datamodel.Symbol, []datamodel.Order](len(t.policies))
	for _, symbol := range state.OrderDepths.Keys() {
		t.telemetry.Print("Processing product:", symbol)
		metrics.TicksTotal.WithLabelValues(symbol).Inc()

		policy, ok := t.policies[symbol]
		if !ok {
			continue
		}
		result.Set(symbol, t.decide(policy, state))
	}

	traderData := memory.Encode()
	if err := t.telemetry.Flush(state, result, t.conversions, traderData); err != nil {
		t.log.Error().Err(err).Int64("timestamp", state.Timestamp).Msg("flush telemetry")
	}
	return result, t.conversions, traderData
}

func (t *Trader) decide(policy strategy.Policy, state *datamodel.TradingState) (orders []datamodel.Order) {
	symbol := policy.Symbol()
	defer func() {
		if r := recover(); r != nil {
			metrics.PolicyFaultsTotal.WithLabelValues(symbol).Inc()
			t.log.Error().Str("symbol", symbol).Interface("panic", r).Msg("policy fault")
			t.telemetry.Print("Policy fault:", symbol)
			orders = []datamodel.Order{}
		}
	}()

	policy.Refresh(state)
	orders = policy.Decide(state)
	if b, ok := policy.(bounded); ok && !b.Limits().Allow(b.Position(), orders) {
		metrics.RejectedTotal.WithLabelValues(symbol).Inc()
		t.log.Warn().Str("symbol", symbol).Int("position", b.Position()).Int("limit", b.Limits().MaxPosition).Msg("orders could breach limit, dropped")
		return []datamodel.Order{}
	}
	for _, o := range orders {
		metrics.OrdersTotal.WithLabelValues(symbol, metrics.Side(o.Quantity)).Inc()
	}
	if orders == nil {
		orders = []datamodel.Order{}
	}
	return orders
}
