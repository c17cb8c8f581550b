package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"cdp/pkg/requestcontext"
)

// Store persists audit events append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Sink forwards events to an external stream. Sink failures never fail the
// business operation; the store write does.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher captures structured audit events into the store and, when
// configured, a streaming sink.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger
}

type Option func(*Publisher)

func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		p.sink = sink
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills identity, time and correlation fields from ctx when unset.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.UserID == nil {
		if actor := requestcontext.UserID(ctx); !actor.IsNil() {
			event.UserID = &actor
		}
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	event.Category = event.Action.Category()

	if err := p.store.Append(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "audit persistence failed",
			"action", event.Action,
			"request_id", event.RequestID,
			"error", err,
		)
		return err
	}
	if p.sink != nil {
		if err := p.sink.Publish(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit stream publish failed",
				"action", event.Action,
				"request_id", event.RequestID,
				"error", err,
			)
		}
	}
	return nil
}

// Recent returns the latest events, newest first.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]Event, error) {
	return p.store.ListRecent(ctx, limit)
}
