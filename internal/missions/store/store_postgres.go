package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cdp/internal/missions/models"
	"cdp/internal/platform/postgres"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
	txcontext "cdp/pkg/platform/tx"
)

// PostgresStore keeps missions in missions_controle with attachments in
// mission_courriers and mission_deplacements.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const missionColumns = `id, numero_mission, entreprise_id, date_mission, type_mission, statut,
	lieu, equipe, rapport, sanctions, suivi, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, m *models.Mission) error {
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO missions_controle (`+missionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		uuid.UUID(m.ID), m.NumeroMission, uuid.UUID(m.EntrepriseID), m.DateMission, string(m.Type), string(m.Statut),
		m.Lieu, textArray(m.Equipe), m.Rapport, m.Sanctions, m.Suivi, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return sentinel.ErrAlreadyUsed
		case postgres.IsForeignKeyViolation(err):
			return sentinel.ErrInvalidState
		}
		return fmt.Errorf("insert mission: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, missionID id.MissionID) (*models.Mission, error) {
	q := txcontext.Use(ctx, s.db)
	m, err := scanMission(q.QueryRowContext(ctx,
		`SELECT `+missionColumns+` FROM missions_controle WHERE id = $1`, uuid.UUID(missionID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find mission: %w", err)
	}
	if m.Courriers, err = s.courriers(ctx, q, missionID); err != nil {
		return nil, err
	}
	if m.Deplacements, err = s.deplacements(ctx, q, missionID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *PostgresStore) courriers(ctx context.Context, q txcontext.Querier, missionID id.MissionID) ([]models.Courrier, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, sens, date, objet, contenu FROM mission_courriers
		WHERE mission_id = $1 ORDER BY date, objet`, uuid.UUID(missionID))
	if err != nil {
		return nil, fmt.Errorf("list courriers: %w", err)
	}
	defer rows.Close()
	var out []models.Courrier
	for rows.Next() {
		var (
			c     models.Courrier
			rawID uuid.UUID
			sens  string
			day   time.Time
		)
		if err := rows.Scan(&rawID, &sens, &day, &c.Objet, &c.Contenu); err != nil {
			return nil, fmt.Errorf("scan courrier: %w", err)
		}
		c.ID = id.CourrierID(rawID)
		c.Sens = models.Sens(sens)
		c.Date = day.Format(models.DateLayout)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) deplacements(ctx context.Context, q txcontext.Querier, missionID id.MissionID) ([]models.Deplacement, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, date, lieu, participants, observations FROM mission_deplacements
		WHERE mission_id = $1 ORDER BY date, lieu`, uuid.UUID(missionID))
	if err != nil {
		return nil, fmt.Errorf("list deplacements: %w", err)
	}
	defer rows.Close()
	var out []models.Deplacement
	for rows.Next() {
		var (
			d     models.Deplacement
			rawID uuid.UUID
			day   time.Time
		)
		if err := rows.Scan(&rawID, &day, &d.Lieu, pq.Array(&d.Participants), &d.Observations); err != nil {
			return nil, fmt.Errorf("scan deplacement: %w", err)
		}
		d.ID = id.DeplacementID(rawID)
		d.Date = day.Format(models.DateLayout)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.Mission, error) {
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
		where = append(where, "(numero_mission ILIKE "+p+" OR lieu ILIKE "+p+")")
	}
	if filter.Statut != "" {
		where = append(where, "statut = "+arg(string(filter.Statut)))
	}
	if filter.Type != "" {
		where = append(where, "type_mission = "+arg(string(filter.Type)))
	}
	if !filter.EntrepriseID.IsNil() {
		where = append(where, "entreprise_id = "+arg(uuid.UUID(filter.EntrepriseID)))
	}
	query := `SELECT ` + missionColumns + ` FROM missions_controle`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date_mission DESC, numero_mission DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	defer rows.Close()
	var out []*models.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mission: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, m *models.Mission) error {
	res, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		UPDATE missions_controle
		SET statut = $2, lieu = $3, equipe = $4, rapport = $5, sanctions = $6, suivi = $7, updated_at = $8
		WHERE id = $1`,
		uuid.UUID(m.ID), string(m.Statut), m.Lieu, textArray(m.Equipe), m.Rapport, m.Sanctions, m.Suivi, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update mission: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, missionID id.MissionID) error {
	res, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `DELETE FROM missions_controle WHERE id = $1`, uuid.UUID(missionID))
	if err != nil {
		return fmt.Errorf("delete mission: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) AddCourrier(ctx context.Context, missionID id.MissionID, c models.Courrier) error {
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO mission_courriers (id, mission_id, sens, date, objet, contenu)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(c.ID), uuid.UUID(missionID), string(c.Sens), c.Date, c.Objet, c.Contenu,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert courrier: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddDeplacement(ctx context.Context, missionID id.MissionID, d models.Deplacement) error {
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO mission_deplacements (id, mission_id, date, lieu, participants, observations)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(d.ID), uuid.UUID(missionID), d.Date, d.Lieu, textArray(d.Participants), d.Observations,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert deplacement: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT statut, COUNT(*) FROM missions_controle GROUP BY statut`)
	if err != nil {
		return nil, fmt.Errorf("count missions: %w", err)
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
		counts[models.Statut(st)] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMission(row scanner) (*models.Mission, error) {
	var (
		m            models.Mission
		rawID        uuid.UUID
		entrepriseID uuid.UUID
		day          time.Time
		typ, statut  string
	)
	err := row.Scan(&rawID, &m.NumeroMission, &entrepriseID, &day, &typ, &statut,
		&m.Lieu, pq.Array(&m.Equipe), &m.Rapport, &m.Sanctions, &m.Suivi, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.ID = id.MissionID(rawID)
	m.EntrepriseID = id.EntrepriseID(entrepriseID)
	m.DateMission = day.Format(models.DateLayout)
	m.Type = models.TypeMission(typ)
	m.Statut = models.Statut(statut)
	return &m, nil
}

// textArray binds a TEXT[] argument; a nil slice is stored as '{}' rather than NULL.
func textArray(v []string) any {
	if v == nil {
		v = []string{}
	}
	return pq.Array(v)
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
