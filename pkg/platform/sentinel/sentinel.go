package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors.
//
//   - ErrNotFound: record does not exist in the store
//   - ErrAlreadyUsed: a unique key (NINEA, email, reference number) is taken
//   - ErrInvalidState: record is in the wrong state for the operation
//   - ErrCorrupt: stored bytes could not be decoded
//   - ErrUnavailable: backing store temporarily unavailable
//
// Input validation failures belong in pkg/domain-errors, not here.
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrCorrupt      = errors.New("corrupt record")
	ErrUnavailable  = errors.New("unavailable")
)
