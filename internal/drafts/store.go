// Package drafts persists in-progress form answers so a user can resume later.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"cdp/internal/forms"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/sentinel"
)

// KeyPrefix namespaces every draft key.
const KeyPrefix = "cdp:draft:"

var (
	ErrNoDraft      = dErrors.New(dErrors.CodeNotFound, "no saved draft for this form")
	ErrCorruptDraft = dErrors.New(dErrors.CodeInvalidInput, "saved draft could not be decoded")
)

// KV is the persistence port. Get returns sentinel.ErrNotFound for a missing
// key; Delete of a missing key is not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store saves one JSON snapshot per (owner, form type), overwritten on each save.
type Store struct {
	kv     KV
	logger *slog.Logger
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func New(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key of a draft.
func Key(owner, formType string) string {
	return KeyPrefix + owner + ":" + formType
}

func (s *Store) Save(ctx context.Context, owner, formType string, answers forms.Answers) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode draft")
	}
	if err := s.kv.Set(ctx, Key(owner, formType), payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to save draft",
			"owner", owner,
			"form_type", formType,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to save draft")
	}
	s.logger.InfoContext(ctx, "draft saved",
		"owner", owner,
		"form_type", formType,
	)
	return nil
}

// Load returns the saved answers, ErrNoDraft when none exist and
// ErrCorruptDraft when the payload is not a JSON object of strings.
func (s *Store) Load(ctx context.Context, owner, formType string) (forms.Answers, error) {
	payload, err := s.kv.Get(ctx, Key(owner, formType))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, ErrNoDraft
		}
		s.logger.ErrorContext(ctx, "failed to load draft",
			"owner", owner,
			"form_type", formType,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load draft")
	}
	var answers forms.Answers
	if err := json.Unmarshal(payload, &answers); err != nil || answers == nil {
		s.logger.WarnContext(ctx, "corrupt draft payload",
			"owner", owner,
			"form_type", formType,
		)
		return nil, ErrCorruptDraft
	}
	return answers, nil
}

func (s *Store) Discard(ctx context.Context, owner, formType string) error {
	if err := s.kv.Delete(ctx, Key(owner, formType)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to discard draft")
	}
	return nil
}
