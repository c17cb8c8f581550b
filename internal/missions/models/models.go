package models

import (
	"strings"
	"time"

	entrepriseModels "cdp/internal/entreprises/models"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	pstrings "cdp/pkg/platform/strings"
)

type TypeMission string

const (
	TypeControleSurPlace  TypeMission = "controle_sur_place"
	TypeControleEnLigne   TypeMission = "controle_en_ligne"
	TypeControleSimplifie TypeMission = "controle_simplifie"
	TypeSuitePlainte      TypeMission = "suite_plainte"
	TypeSuitePleniere     TypeMission = "suite_pleniere"
)

func ParseTypeMission(s string) (TypeMission, error) {
	t := TypeMission(strings.TrimSpace(s))
	switch t {
	case TypeControleSurPlace, TypeControleEnLigne, TypeControleSimplifie, TypeSuitePlainte, TypeSuitePleniere:
		return t, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown mission type: "+s)
}

type Statut string

const (
	StatutPlanifiee Statut = "planifiée"
	StatutEnCours   Statut = "en_cours"
	StatutTerminee  Statut = "terminée"
)

// rank orders statuses; a mission never moves backwards.
var rank = map[Statut]int{StatutPlanifiee: 0, StatutEnCours: 1, StatutTerminee: 2}

func ParseStatut(s string) (Statut, error) {
	st := Statut(strings.TrimSpace(s))
	if _, ok := rank[st]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown mission status: "+s)
	}
	return st, nil
}

func (s Statut) CanMoveTo(next Statut) bool {
	from, ok := rank[s]
	to, ok2 := rank[next]
	return ok && ok2 && to >= from
}

type Sens string

const (
	SensEnvoye Sens = "envoye"
	SensRecu   Sens = "recu"
)

func ParseSens(s string) (Sens, error) {
	switch Sens(s) {
	case SensEnvoye, SensRecu:
		return Sens(s), nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "sens must be envoye or recu")
}

// DateLayout formats mission, courrier and déplacement days.
const DateLayout = "2006-01-02"

// Mission is a control mission against a registered company.
type Mission struct {
	ID            id.MissionID    `json:"id"`
	NumeroMission string          `json:"numeroMission"`
	EntrepriseID  id.EntrepriseID `json:"entrepriseId"`
	DateMission   string          `json:"dateMission"`
	Type          TypeMission     `json:"typeMission"`
	Statut        Statut          `json:"statut"`
	Lieu          string          `json:"lieu"`
	Equipe        []string        `json:"equipe"`
	Rapport       string          `json:"rapport,omitempty"`
	Sanctions     string          `json:"sanctions,omitempty"`
	Suivi         string          `json:"suivi,omitempty"`
	Courriers     []Courrier      `json:"courriers,omitempty"`
	Deplacements  []Deplacement   `json:"deplacements,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	// Entreprise is filled for display and never stored.
	Entreprise *entrepriseModels.Summary `json:"entreprise,omitempty"`
}

// Courrier is a letter sent to or received from the controlled company.
type Courrier struct {
	ID      id.CourrierID `json:"id"`
	Sens    Sens          `json:"sens"`
	Date    string        `json:"date"`
	Objet   string        `json:"objet"`
	Contenu string        `json:"contenu"`
}

// Deplacement is an on-site visit made during the mission.
type Deplacement struct {
	ID           id.DeplacementID `json:"id"`
	Date         string           `json:"date"`
	Lieu         string           `json:"lieu"`
	Participants []string         `json:"participants"`
	Observations string           `json:"observations,omitempty"`
}

// Filter narrows List results. Search matches the mission number or place.
type Filter struct {
	Search       string
	Statut       Statut
	Type         TypeMission
	EntrepriseID id.EntrepriseID
}

func (f Filter) Matches(m *Mission) bool {
	if f.Statut != "" && m.Statut != f.Statut {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if !f.EntrepriseID.IsNil() && m.EntrepriseID != f.EntrepriseID {
		return false
	}
	if f.Search == "" {
		return true
	}
	return pstrings.ContainsFold(m.NumeroMission, f.Search) || pstrings.ContainsFold(m.Lieu, f.Search)
}

// Update carries the fields a mission update may change. Nil fields are kept.
type Update struct {
	Statut    *Statut
	Lieu      *string
	Equipe    []string
	Rapport   *string
	Sanctions *string
	Suivi     *string
}

// Apply validates the status move and copies the set fields onto m.
func (u Update) Apply(m *Mission, now time.Time) error {
	if u.Statut != nil {
		if !m.Statut.CanMoveTo(*u.Statut) {
			return dErrors.New(dErrors.CodeInvariantViolation,
				"mission cannot move from "+string(m.Statut)+" to "+string(*u.Statut))
		}
		m.Statut = *u.Statut
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&m.Lieu, u.Lieu)
	set(&m.Rapport, u.Rapport)
	set(&m.Sanctions, u.Sanctions)
	set(&m.Suivi, u.Suivi)
	if u.Equipe != nil {
		m.Equipe = pstrings.DedupeAndTrim(u.Equipe)
	}
	m.UpdatedAt = now
	return nil
}

// StatusCounts is used by dashboard statistics.
type StatusCounts map[Statut]int
