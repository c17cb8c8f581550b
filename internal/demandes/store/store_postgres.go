package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cdp/internal/demandes/models"
	"cdp/internal/platform/postgres"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
	txcontext "cdp/pkg/platform/tx"
)

// PostgresStore persists demandes with details as JSONB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const demandeColumns = `id, type_formulaire, numero_reference, date_soumission, statut,
	nom_entreprise, details, submitted_by, date_traitement, observations, created_at`

func (s *PostgresStore) Append(ctx context.Context, d *models.Demande) error {
	details, err := d.Details.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}
	_, err = txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO demandes (`+demandeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.UUID(d.ID), d.Type, d.NumeroReference, d.DateSoumission, string(d.Statut),
		d.Entreprise.Nom, details, nullableUser(d.SubmittedBy), d.DateTraitement, d.Observations, d.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert demande: %w", err)
	}
	return nil
}

// LatestReference returns the highest reference number stored. References
// share one width, so ordering by length then text is numeric.
func (s *PostgresStore) LatestReference(ctx context.Context) (string, error) {
	var ref string
	err := s.db.QueryRowContext(ctx, `
		SELECT numero_reference FROM demandes
		WHERE numero_reference LIKE 'DEM-%'
		ORDER BY length(numero_reference) DESC, numero_reference DESC
		LIMIT 1`).Scan(&ref)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("latest reference: %w", err)
	}
	return ref, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, demandeID id.DemandeID) (*models.Demande, error) {
	row := txcontext.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+demandeColumns+` FROM demandes WHERE id = $1`, uuid.UUID(demandeID))
	d, err := scanDemande(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find demande: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.Demande, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, "(numero_reference ILIKE "+p+" OR nom_entreprise ILIKE "+p+")")
	}
	if filter.Status != "" {
		where = append(where, "statut = "+arg(string(filter.Status)))
	}
	if filter.Type != "" {
		where = append(where, "type_formulaire = "+arg(filter.Type))
	}
	if !filter.SubmittedBy.IsNil() {
		where = append(where, "submitted_by = "+arg(uuid.UUID(filter.SubmittedBy)))
	}
	query := `SELECT ` + demandeColumns + ` FROM demandes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, numero_reference DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list demandes: %w", err)
	}
	defer rows.Close()

	var out []*models.Demande
	for rows.Next() {
		d, err := scanDemande(rows)
		if err != nil {
			return nil, fmt.Errorf("scan demande: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, d *models.Demande) error {
	res, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		UPDATE demandes SET statut = $2, date_traitement = $3, observations = $4
		WHERE id = $1`,
		uuid.UUID(d.ID), string(d.Statut), d.DateTraitement, d.Observations,
	)
	if err != nil {
		return fmt.Errorf("update demande: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, demandeID id.DemandeID) error {
	res, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `DELETE FROM demandes WHERE id = $1`, uuid.UUID(demandeID))
	if err != nil {
		return fmt.Errorf("delete demande: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT statut, COUNT(*) FROM demandes GROUP BY statut`)
	if err != nil {
		return nil, fmt.Errorf("count demandes: %w", err)
	}
	defer rows.Close()
	counts := models.StatusCounts{}
	for rows.Next() {
		var (
			st string
			n  int
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[models.Status(st)] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDemande(row scanner) (*models.Demande, error) {
	var (
		d           models.Demande
		demandeID   uuid.UUID
		day         time.Time
		statut      string
		details     []byte
		submittedBy uuid.NullUUID
		traitement  sql.NullTime
	)
	err := row.Scan(&demandeID, &d.Type, &d.NumeroReference, &day, &statut,
		&d.Entreprise.Nom, &details, &submittedBy, &traitement, &d.Observations, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.ID = id.DemandeID(demandeID)
	d.DateSoumission = day.Format(models.DateLayout)
	d.Statut = models.Status(statut)
	if submittedBy.Valid {
		d.SubmittedBy = id.UserID(submittedBy.UUID)
	}
	if traitement.Valid {
		t := traitement.Time
		d.DateTraitement = &t
	}
	d.Details, err = models.UnmarshalDetails(d.Type, details)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nullableUser(u id.UserID) any {
	if u.IsNil() {
		return nil
	}
	return uuid.UUID(u)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
