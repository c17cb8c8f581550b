package models

import (
	"fmt"
	"time"

	id "cdp/pkg/domain"
	pstrings "cdp/pkg/platform/strings"
)

// DateLayout formats emission and validity days.
const DateLayout = "2006-01-02"

// Recepisse is the receipt issued for a demande. Numbers are
// REC-<year>-<sequence> with the sequence restarting each year.
type Recepisse struct {
	ID              id.RecepisseID `json:"id"`
	NumeroRecepisse string         `json:"numeroRecepisse"`
	DemandeID       id.DemandeID   `json:"demandeId"`
	Annee           int            `json:"-"`
	Sequence        int            `json:"-"`
	DateEmission    string         `json:"dateEmission"`
	TypeDocument    string         `json:"typeDocument"`
	// ValiditeJusquau is empty for receipts that never expire.
	ValiditeJusquau string `json:"validiteJusquau,omitempty"`
}

// FormatNumero renders the public receipt number.
func FormatNumero(annee, sequence int) string {
	return fmt.Sprintf("REC-%d-%06d", annee, sequence)
}

// IsValidOn reports whether the receipt is still valid on day's date.
func (r *Recepisse) IsValidOn(day time.Time) bool {
	if r.ValiditeJusquau == "" {
		return true
	}
	return r.ValiditeJusquau >= day.Format(DateLayout)
}

// Filter narrows List results.
type Filter struct {
	// Search matches the receipt number, case-insensitive.
	Search    string
	DemandeID id.DemandeID
}

func (f Filter) Matches(r *Recepisse) bool {
	if !f.DemandeID.IsNil() && r.DemandeID != f.DemandeID {
		return false
	}
	return f.Search == "" || pstrings.ContainsFold(r.NumeroRecepisse, f.Search)
}
