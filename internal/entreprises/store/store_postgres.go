package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cdp/internal/entreprises/models"
	"cdp/internal/platform/postgres"
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

const entrepriseColumns = `id, nom, ninea, adresse, telephone, email, secteur_activite, date_inscription, statut`

func (s *PostgresStore) Create(ctx context.Context, e *models.Entreprise) error {
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO entreprises (`+entrepriseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(e.ID), e.Nom, e.NINEA, e.Adresse, e.Telephone, e.Email,
		e.SecteurActivite, e.DateInscription, string(e.Statut),
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert entreprise: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, entrepriseID id.EntrepriseID) (*models.Entreprise, error) {
	row := txcontext.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+entrepriseColumns+` FROM entreprises WHERE id = $1`, uuid.UUID(entrepriseID))
	e, err := scanEntreprise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find entreprise: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.Entreprise, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Search != "" {
		where = append(where, "(nom ILIKE "+arg("%"+filter.Search+"%")+" OR ninea LIKE "+arg("%"+filter.Search+"%")+")")
	}
	if filter.Secteur != "" {
		where = append(where, "secteur_activite = "+arg(filter.Secteur))
	}
	if filter.Statut != "" {
		where = append(where, "statut = "+arg(string(filter.Statut)))
	}
	query := `SELECT ` + entrepriseColumns + ` FROM entreprises`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY LOWER(nom)"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entreprises: %w", err)
	}
	defer rows.Close()
	var out []*models.Entreprise
	for rows.Next() {
		e, err := scanEntreprise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entreprise: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, e *models.Entreprise) error {
	res, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		UPDATE entreprises
		SET nom = $2, adresse = $3, telephone = $4, email = $5, secteur_activite = $6, statut = $7
		WHERE id = $1`,
		uuid.UUID(e.ID), e.Nom, e.Adresse, e.Telephone, e.Email, e.SecteurActivite, string(e.Statut),
	)
	if err != nil {
		return fmt.Errorf("update entreprise: %w", err)
	}
	return requireOneRow(res)
}

// Delete fails with sentinel.ErrInvalidState while missions still reference the company.
func (s *PostgresStore) Delete(ctx context.Context, entrepriseID id.EntrepriseID) error {
	res, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `DELETE FROM entreprises WHERE id = $1`, uuid.UUID(entrepriseID))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrInvalidState
		}
		return fmt.Errorf("delete entreprise: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) Secteurs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT secteur_activite FROM entreprises
		WHERE secteur_activite <> '' ORDER BY secteur_activite`)
	if err != nil {
		return nil, fmt.Errorf("list secteurs: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var sec string
		if err := rows.Scan(&sec); err != nil {
			return nil, fmt.Errorf("scan secteur: %w", err)
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entreprises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entreprises: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntreprise(row scanner) (*models.Entreprise, error) {
	var (
		e           models.Entreprise
		rawID       uuid.UUID
		inscription time.Time
		statut      string
	)
	if err := row.Scan(&rawID, &e.Nom, &e.NINEA, &e.Adresse, &e.Telephone, &e.Email,
		&e.SecteurActivite, &inscription, &statut); err != nil {
		return nil, err
	}
	e.ID = id.EntrepriseID(rawID)
	e.DateInscription = inscription.Format(models.DateLayout)
	e.Statut = models.Statut(statut)
	return &e, nil
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
