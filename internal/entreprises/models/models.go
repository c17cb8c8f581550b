package models

import (
	"strings"

	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	pstrings "cdp/pkg/platform/strings"
)

// Statut is the registration status of a company.
type Statut string

const (
	StatutActive    Statut = "active"
	StatutSuspendue Statut = "suspendue"
	StatutRadiee    Statut = "radiée"
)

func ParseStatut(s string) (Statut, error) {
	st := Statut(strings.TrimSpace(s))
	switch st {
	case StatutActive, StatutSuspendue, StatutRadiee:
		return st, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown entreprise status: "+s)
}

// DateLayout formats registration days.
const DateLayout = "2006-01-02"

// Entreprise is a registered data controller. NINEA is the national
// identification number and is unique across the registry.
type Entreprise struct {
	ID              id.EntrepriseID `json:"id"`
	Nom             string          `json:"nom"`
	NINEA           string          `json:"ninea"`
	Adresse         string          `json:"adresse"`
	Telephone       string          `json:"telephone"`
	Email           string          `json:"email"`
	SecteurActivite string          `json:"secteurActivite"`
	DateInscription string          `json:"dateInscription"`
	Statut          Statut          `json:"statut"`
}

// Summary is the read-only projection other modules display.
type Summary struct {
	ID    id.EntrepriseID `json:"id"`
	Nom   string          `json:"nom"`
	NINEA string          `json:"ninea"`
	Email string          `json:"email"`
}

func (e *Entreprise) Summary() Summary {
	return Summary{ID: e.ID, Nom: e.Nom, NINEA: e.NINEA, Email: e.Email}
}

// Filter narrows List results. Search matches the name case-insensitively or
// the NINEA as a substring.
type Filter struct {
	Search  string
	Secteur string
	Statut  Statut
}

func (f Filter) Matches(e *Entreprise) bool {
	if f.Secteur != "" && e.SecteurActivite != f.Secteur {
		return false
	}
	if f.Statut != "" && e.Statut != f.Statut {
		return false
	}
	if f.Search == "" {
		return true
	}
	return pstrings.ContainsFold(e.Nom, f.Search) || strings.Contains(e.NINEA, f.Search)
}

// Patch carries the fields an update may change. Nil fields are left as is.
type Patch struct {
	Nom             *string
	Adresse         *string
	Telephone       *string
	Email           *string
	SecteurActivite *string
	Statut          *Statut
}

// Apply copies the set fields onto e.
func (p Patch) Apply(e *Entreprise) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&e.Nom, p.Nom)
	set(&e.Adresse, p.Adresse)
	set(&e.Telephone, p.Telephone)
	set(&e.Email, p.Email)
	set(&e.SecteurActivite, p.SecteurActivite)
	if p.Statut != nil {
		e.Statut = *p.Statut
	}
}
