package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cdp/internal/platform/postgres"
	"cdp/internal/recepisses/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
	txcontext "cdp/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const recepisseColumns = `id, numero_recepisse, demande_id, annee, sequence, date_emission, type_document, validite_jusqu_au`

// Issue numbers and inserts r in one transaction. An advisory lock keyed by
// year serialises concurrent issuers; the (annee, sequence) unique key backs it.
func (s *PostgresStore) Issue(ctx context.Context, r *models.Recepisse) error {
	return txcontext.RunInTx(ctx, s.db, func(ctx context.Context) error {
		q := txcontext.Use(ctx, s.db)
		if _, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(r.Annee)); err != nil {
			return fmt.Errorf("lock recepisse year: %w", err)
		}
		var next int
		if err := q.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(sequence), 0) + 1 FROM recepisses WHERE annee = $1`, r.Annee,
		).Scan(&next); err != nil {
			return fmt.Errorf("next recepisse sequence: %w", err)
		}

		numero := models.FormatNumero(r.Annee, next)
		var validite any
		if r.ValiditeJusquau != "" {
			validite = r.ValiditeJusquau
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO recepisses (`+recepisseColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.UUID(r.ID), numero, uuid.UUID(r.DemandeID), r.Annee, next, r.DateEmission, r.TypeDocument, validite,
		)
		if err != nil {
			switch {
			case postgres.IsUniqueViolation(err):
				return sentinel.ErrAlreadyUsed
			case postgres.IsForeignKeyViolation(err):
				return sentinel.ErrInvalidState
			}
			return fmt.Errorf("insert recepisse: %w", err)
		}
		r.Sequence = next
		r.NumeroRecepisse = numero
		return nil
	})
}

func (s *PostgresStore) FindByID(ctx context.Context, recepisseID id.RecepisseID) (*models.Recepisse, error) {
	r, err := scanRecepisse(txcontext.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+recepisseColumns+` FROM recepisses WHERE id = $1`, uuid.UUID(recepisseID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find recepisse: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.Recepisse, error) {
	query := `SELECT ` + recepisseColumns + ` FROM recepisses WHERE numero_recepisse ILIKE $1`
	args := []any{"%" + filter.Search + "%"}
	if !filter.DemandeID.IsNil() {
		query += ` AND demande_id = $2`
		args = append(args, uuid.UUID(filter.DemandeID))
	}
	query += ` ORDER BY annee DESC, sequence DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recepisses: %w", err)
	}
	defer rows.Close()
	var out []*models.Recepisse
	for rows.Next() {
		r, err := scanRecepisse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recepisse: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountValid(ctx context.Context, day string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM recepisses
		WHERE validite_jusqu_au IS NULL OR validite_jusqu_au >= $1`, day,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count valid recepisses: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecepisse(row scanner) (*models.Recepisse, error) {
	var (
		r         models.Recepisse
		rawID     uuid.UUID
		demandeID uuid.UUID
		emission  time.Time
		validite  sql.NullTime
	)
	if err := row.Scan(&rawID, &r.NumeroRecepisse, &demandeID, &r.Annee, &r.Sequence,
		&emission, &r.TypeDocument, &validite); err != nil {
		return nil, err
	}
	r.ID = id.RecepisseID(rawID)
	r.DemandeID = id.DemandeID(demandeID)
	r.DateEmission = emission.Format(models.DateLayout)
	if validite.Valid {
		r.ValiditeJusquau = validite.Time.Format(models.DateLayout)
	}
	return &r, nil
}
