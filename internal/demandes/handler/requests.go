package handler

import (
	"strings"

	"cdp/internal/demandes/models"
)

type UpdateStatusRequest struct {
	Statut       string `json:"statut"`
	Observations string `json:"observations"`

	status models.Status
}

func (r *UpdateStatusRequest) Validate() error {
	st, err := models.ParseStatus(strings.TrimSpace(r.Statut))
	if err != nil {
		return err
	}
	r.status = st
	r.Observations = strings.TrimSpace(r.Observations)
	return nil
}

type listResponse struct {
	Demandes []*models.Demande `json:"demandes"`
	Total    int               `json:"total"`
}
