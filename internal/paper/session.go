// Package paper simulates the host side of the exchange: it feeds ticks to the agent,
// enforces position limits and books fills against an in-memory account.
package paper

import (
	"github.com/rs/zerolog"

	"tickbot-go/internal/datamodel"
	"tickbot-go/internal/execution"
	"tickbot-go/internal/metrics"
)

// Agent is the per-tick entry point the host invokes.
type Agent interface {
	Run(state *datamodel.TradingState) (datamodel.Orders, int, string)
}

// Result summarizes one simulated tick.
type Result struct {
	Orders      datamodel.Orders
	Fills       []datamodel.Trade
	Rejected    []datamodel.Symbol
	Conversions int
}

// Session carries host state between ticks: positions, last fills and the agent's trader data.
type Session struct {
	agent    Agent
	account  *Account
	exec     *execution.Executor
	ledger   *Ledger
	recorder FillRecorder
	log      zerolog.Logger

	traderData    string
	lastTimestamp int64
	ticked        bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRecorder persists every fill.
func WithRecorder(r FillRecorder) SessionOption {
	return func(s *Session) { s.recorder = r }
}

// WithSessionLogger overrides the diagnostics logger.
func WithSessionLogger(log zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// NewSession wires an agent to an account.
func NewSession(agent Agent, account *Account, opts ...SessionOption) *Session {
	s := &Session{
		agent:   agent,
		account: account,
		ledger:  NewLedger(0),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.exec = execution.NewExecutor(s.log)
	return s
}

// Account returns the session's account.
func (s *Session) Account() *Account { return s.account }

// Ledger returns every fill booked so far.
func (s *Session) Ledger() *Ledger { return s.ledger }

// Step overwrites the host-owned fields of state (position, own trades, trader data),
// runs the agent and matches what it returns. A symbol's whole batch is rejected when
// it could push the position past the limit.
func (s *Session) Step(state *datamodel.TradingState) Result {
	if state == nil {
		state = &datamodel.TradingState{}
	}
	state.Position = s.account.Positions()
	state.TraderData = s.traderData
	if s.ticked {
		state.OwnTrades = s.ledger.At(s.lastTimestamp)
	} else {
		state.OwnTrades = datamodel.OrderedMap[datamodel.Symbol, []datamodel.Trade]{}
	}

	orders, conversions, traderData := s.agent.Run(state)
	result := Result{Orders: orders, Conversions: conversions}

	orders.Range(func(symbol datamodel.Symbol, batch []datamodel.Order) bool {
		if len(batch) == 0 {
			return true
		}
		if !s.account.Check(symbol, batch) {
			metrics.RejectedTotal.WithLabelValues(symbol).Inc()
			s.log.Warn().Str("sym", symbol).Int("orders", len(batch)).Int("pos", s.account.Position(symbol)).Msg("batch rejected by position limit")
			result.Rejected = append(result.Rejected, symbol)
			return true
		}
		depth, _ := state.Depth(symbol)
		for _, fill := range s.exec.Execute(symbol, batch, depth, state.Timestamp) {
			if err := s.account.Apply(fill); err != nil {
				s.log.Error().Err(err).Str("sym", symbol).Msg("apply fill")
				continue
			}
			s.ledger.Record(fill)
			if s.recorder != nil {
				s.recorder.Record(fill)
			}
			result.Fills = append(result.Fills, fill)
		}
		return true
	})

	s.traderData = traderData
	s.lastTimestamp = state.Timestamp
	s.ticked = true
	return result
}
