package audit

import (
	"context"
	"errors"
	"log/slog"

	"cdp/pkg/platform/circuit"
)

// ErrSinkOpen is returned while the sink circuit is open and events are
// kept in the store only.
var ErrSinkOpen = errors.New("audit sink circuit open")

// BreakerSink stops calling a failing sink until its circuit cools down,
// so a broker outage does not add a produce timeout to every request.
type BreakerSink struct {
	sink    Sink
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewBreakerSink(sink Sink, breaker *circuit.Breaker, logger *slog.Logger) *BreakerSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BreakerSink{sink: sink, breaker: breaker, logger: logger}
}

func (s *BreakerSink) Publish(ctx context.Context, event Event) error {
	if !s.breaker.Allow() {
		return ErrSinkOpen
	}
	if err := s.sink.Publish(ctx, event); err != nil {
		if s.breaker.Failure() {
			s.logger.WarnContext(ctx, "audit sink circuit opened",
				"breaker", s.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if s.breaker.Success() {
		s.logger.InfoContext(ctx, "audit sink circuit closed", "breaker", s.breaker.Name())
	}
	return nil
}
