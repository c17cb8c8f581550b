package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "cdp/pkg/domain"
	txcontext "cdp/pkg/platform/tx"
)

// PostgresStore appends events to audit_events. Inside a transaction started
// with tx.RunInTx the event commits or rolls back with the business write.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	var userID *uuid.UUID
	if event.UserID != nil && !event.UserID.IsNil() {
		u := uuid.UUID(*event.UserID)
		userID = &u
	}
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO audit_events (id, category, action, user_id, subject, request_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, string(event.Category), string(event.Action), userID,
		event.Subject, event.RequestID, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, action, user_id, subject, request_id, occurred_at
		FROM audit_events
		ORDER BY occurred_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e      Event
			userID uuid.NullUUID
		)
		if err := rows.Scan(&e.ID, &e.Category, &e.Action, &userID, &e.Subject, &e.RequestID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if userID.Valid {
			actor := id.UserID(userID.UUID)
			e.UserID = &actor
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
