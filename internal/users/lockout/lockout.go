// Package lockout throttles password guessing. Failed logins are counted per
// (email, client IP) inside a window; reaching the limit locks the pair.
package lockout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/sentinel"
	"cdp/pkg/requestcontext"
)

const keyPrefix = "cdp:lockout:"

var ErrLocked = dErrors.New(dErrors.CodeRateLimited, "too many failed login attempts, try again later")

// Record is the failure state of one key.
type Record struct {
	Key         string    `json:"key"`
	Failures    int       `json:"failures"`
	WindowStart time.Time `json:"windowStart"`
	LockedUntil time.Time `json:"lockedUntil"`
}

func (r *Record) LockedAt(now time.Time) bool {
	return now.Before(r.LockedUntil)
}

// Store keeps records. Get returns sentinel.ErrNotFound for unknown or
// expired keys.
type Store interface {
	Get(ctx context.Context, key string) (*Record, error)
	Save(ctx context.Context, r *Record, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Config struct {
	MaxAttempts  int
	Window       time.Duration
	LockDuration time.Duration
}

func DefaultConfig() Config {
	return Config{MaxAttempts: 5, Window: 15 * time.Minute, LockDuration: 15 * time.Minute}
}

type Service struct {
	store  Store
	config Config
	logger *slog.Logger
}

type Option func(*Service)

func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, config: DefaultConfig(), logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func Key(email, ip string) string {
	return keyPrefix + email + ":" + ip
}

// Check returns ErrLocked while the pair is locked. A store failure is
// logged and lets the attempt through.
func (s *Service) Check(ctx context.Context, email, ip string) error {
	r, err := s.store.Get(ctx, Key(email, ip))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.WarnContext(ctx, "lockout check failed", "error", err)
		return nil
	}
	if r.LockedAt(requestcontext.Now(ctx)) {
		return ErrLocked
	}
	return nil
}

// RecordFailure counts one failed attempt and reports whether it locked the pair.
func (s *Service) RecordFailure(ctx context.Context, email, ip string) (bool, error) {
	now := requestcontext.Now(ctx)
	key := Key(email, ip)

	r, err := s.store.Get(ctx, key)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load lockout record")
	}
	expired := r != nil && (now.Sub(r.WindowStart) >= s.config.Window ||
		(!r.LockedUntil.IsZero() && !r.LockedAt(now)))
	if r == nil || expired {
		r = &Record{Key: key, WindowStart: now}
	}

	r.Failures++
	locked := false
	if r.Failures >= s.config.MaxAttempts && r.LockedUntil.IsZero() {
		r.LockedUntil = now.Add(s.config.LockDuration)
		locked = true
	}

	ttl := max(r.WindowStart.Add(s.config.Window).Sub(now), r.LockedUntil.Sub(now))
	if err := s.store.Save(ctx, r, ttl); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save lockout record")
	}
	if locked {
		s.logger.WarnContext(ctx, "login locked",
			"request_id", requestcontext.RequestID(ctx),
			"failures", r.Failures,
			"locked_until", r.LockedUntil,
		)
	}
	return locked, nil
}

// Clear forgets failures after a successful login.
func (s *Service) Clear(ctx context.Context, email, ip string) error {
	if err := s.store.Delete(ctx, Key(email, ip)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear lockout record")
	}
	return nil
}
