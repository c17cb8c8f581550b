package handler

import (
	"cdp/internal/recepisses/models"
	id "cdp/pkg/domain"
)

type IssueRequest struct {
	DemandeID       string `json:"demandeId"`
	TypeDocument    string `json:"typeDocument"`
	ValiditeJusquau string `json:"validiteJusquau"`

	demandeID id.DemandeID
}

func (r *IssueRequest) Validate() error {
	demandeID, err := id.ParseDemandeID(r.DemandeID)
	if err != nil {
		return err
	}
	r.demandeID = demandeID
	return nil
}

type listResponse struct {
	Recepisses []*models.Recepisse `json:"recepisses"`
	Total      int                 `json:"total"`
}
