package models

import (
	"time"

	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
)

// Status is the processing state of a demande.
type Status string

const (
	StatusEnAttente Status = "en_attente"
	StatusEnCours   Status = "en_cours"
	StatusApprouvee Status = "approuvée"
	StatusRejetee   Status = "rejetée"
)

var transitions = map[Status][]Status{
	StatusEnAttente: {StatusEnCours, StatusRejetee},
	StatusEnCours:   {StatusApprouvee, StatusRejetee},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown demande status: "+s)
	}
	return st, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusEnAttente, StatusEnCours, StatusApprouvee, StatusRejetee:
		return true
	}
	return false
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == StatusApprouvee || s == StatusRejetee
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Demande is a regulatory request created once at submission.
//
// Invariants:
//   - NumeroReference is unique and never changes
//   - Status only moves along the transition table
//   - DateTraitement is set exactly when Status becomes final
type Demande struct {
	ID              id.DemandeID `json:"id"`
	Type            string       `json:"type"`
	NumeroReference string       `json:"numeroReference"`
	// DateSoumission is the submission day, formatted YYYY-MM-DD on the wire.
	DateSoumission string     `json:"dateSoumission"`
	Statut         Status     `json:"statut"`
	Entreprise     Entreprise `json:"entreprise"`
	Details        Details    `json:"details"`
	SubmittedBy    id.UserID  `json:"submittedBy"`
	DateTraitement *time.Time `json:"dateTraitement,omitempty"`
	Observations   string     `json:"observations,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Entreprise is the applicant organisation as named in the form.
type Entreprise struct {
	Nom string `json:"nom"`
}

// DateLayout formats submission days.
const DateLayout = "2006-01-02"

// Transition moves the demande to next, stamping processing data on final states.
func (d *Demande) Transition(next Status, observations string, now time.Time) error {
	if !next.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown demande status")
	}
	if !d.Statut.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"transition from "+string(d.Statut)+" to "+string(next)+" is not allowed")
	}
	d.Statut = next
	if next.IsFinal() {
		t := now
		d.DateTraitement = &t
		d.Observations = observations
	}
	return nil
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	// Search matches the reference number or company name, case-insensitive.
	Search string
	Status Status
	Type   string
	// SubmittedBy restricts results to one applicant.
	SubmittedBy id.UserID
}

// MatchesExact reports whether d satisfies the filter's exact-match fields.
// The search term is left to each store.
func (f Filter) MatchesExact(d *Demande) bool {
	if f.Status != "" && d.Statut != f.Status {
		return false
	}
	if f.Type != "" && d.Type != f.Type {
		return false
	}
	if !f.SubmittedBy.IsNil() && d.SubmittedBy != f.SubmittedBy {
		return false
	}
	return true
}

// StatusCounts is used by dashboard statistics.
type StatusCounts map[Status]int
