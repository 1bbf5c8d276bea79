// Package telemetry writes one size-capped structured line per tick.
//
// The line is the JSON array
//
//	[compressedState, compressedOrders, conversions, traderData, logs]
//
// where the incoming trader data (inside compressedState), the outgoing trader data and the
// accumulated debug text share whatever budget the structural fields leave.
package telemetry

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/yanun0323/errors"

	"tickbot-go/internal/codec"
	"tickbot-go/internal/datamodel"
	"tickbot-go/internal/metrics"
)

// DefaultMaxLength is the per-tick output ceiling of the host.
const DefaultMaxLength = 3750

// ErrEnvelopeTooLarge is returned when even the structural fields exceed the budget.
var ErrEnvelopeTooLarge = errors.New("telemetry: envelope exceeds max length")

// Logger buffers debug text during a tick and emits it with the tick's state on Flush.
// It is not safe for concurrent use; ticks are processed one at a time.
type Logger struct {
	out       io.Writer
	maxLength int
	logs      strings.Builder
}

// Option configures a Logger.
type Option func(*Logger)

// WithMaxLength overrides DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(l *Logger) {
		if n > 0 {
			l.maxLength = n
		}
	}
}

// New returns a Logger emitting to out, or stdout when out is nil.
func New(out io.Writer, opts ...Option) *Logger {
	if out == nil {
		out = os.Stdout
	}
	l := &Logger{out: out, maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// MaxLength returns the byte budget of one line.
func (l *Logger) MaxLength() int { return l.maxLength }

// Print joins objects with a space and records them as one line.
func (l *Logger) Print(objects ...any) {
	parts := make([]string, len(objects))
	for i, o := range objects {
		parts[i] = fmt.Sprint(o)
	}
	l.Record(strings.Join(parts, " "))
}

// Record appends text and a newline to the debug buffer.
func (l *Logger) Record(text string) {
	l.logs.WriteString(text)
	l.logs.WriteByte('\n')
}

// Write appends p verbatim so structured loggers can target the debug buffer.
func (l *Logger) Write(p []byte) (int, error) {
	return l.logs.Write(p)
}

// Debug returns a compact console logger whose lines land in the debug buffer.
func (l *Logger) Debug() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:          l,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	})
}

// Pending returns the debug text recorded since the last flush.
func (l *Logger) Pending() string { return l.logs.String() }

// Flush writes the tick's telemetry line and clears the debug buffer on every path.
func (l *Logger) Flush(state *datamodel.TradingState, orders datamodel.Orders, conversions int, traderData string) error {
	defer l.logs.Reset()

	var incoming string
	if state != nil {
		incoming = state.TraderData
	}
	logs := l.logs.String()
	compressedOrders := codec.CompressOrders(orders)

	base, err := encode(codec.CompressState(state, ""), compressedOrders, conversions, "", "")
	if err != nil {
		return errors.Wrap(err, "encode baseline envelope")
	}

	share := (l.maxLength - len(base)) / 3
	incomingOut := truncateField("incoming_trader_data", incoming, share)
	traderDataOut := truncateField("trader_data", traderData, share)
	logsOut := truncateField("logs", logs, share)

	line, err := encode(codec.CompressState(state, incomingOut), compressedOrders, conversions, traderDataOut, logsOut)
	if err != nil {
		return errors.Wrap(err, "encode envelope")
	}

	// Escapes make encoded text longer than raw text. Each raw byte cut removes at least one
	// encoded byte, so cutting the logs by the overflow brings the line under budget.
	if over := len(line) - l.maxLength; over > 0 && len(logsOut) > over {
		logsOut = Truncate(logs, len(logsOut)-over)
		line, err = encode(codec.CompressState(state, incomingOut), compressedOrders, conversions, traderDataOut, logsOut)
		if err != nil {
			return errors.Wrap(err, "encode envelope")
		}
	}
	if len(line) > l.maxLength && logsOut != "" {
		metrics.TruncationsTotal.WithLabelValues("logs").Inc()
		logsOut = ""
		line, err = encode(codec.CompressState(state, incomingOut), compressedOrders, conversions, traderDataOut, logsOut)
		if err != nil {
			return errors.Wrap(err, "encode envelope")
		}
	}
	if len(line) > l.maxLength {
		line = base
	}
	if len(line) > l.maxLength {
		return ErrEnvelopeTooLarge
	}

	metrics.TelemetryBytes.Observe(float64(len(line)))
	line = append(line, '\n')
	if _, err := l.out.Write(line); err != nil {
		return errors.Wrap(err, "write telemetry line")
	}
	return nil
}

func encode(state []any, orders [][]any, conversions int, traderData, logs string) ([]byte, error) {
	out, err := sonic.ConfigDefault.Marshal([]any{state, orders, conversions, traderData, logs})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(out), nil
}

func truncateField(field, value string, share int) string {
	out := Truncate(value, share)
	if len(out) != len(value) {
		metrics.TruncationsTotal.WithLabelValues(field).Inc()
	}
	return out
}
