package handler

import (
	"time"

	"cdp/internal/entreprises/models"
	dErrors "cdp/pkg/domain-errors"
)

type CreateRequest struct {
	Nom             string `json:"nom"`
	NINEA           string `json:"ninea"`
	Adresse         string `json:"adresse"`
	Telephone       string `json:"telephone"`
	Email           string `json:"email"`
	SecteurActivite string `json:"secteurActivite"`
	DateInscription string `json:"dateInscription"`
	Statut          string `json:"statut"`

	statut models.Statut
}

func (r *CreateRequest) Validate() error {
	if r.Statut != "" {
		st, err := models.ParseStatut(r.Statut)
		if err != nil {
			return err
		}
		r.statut = st
	}
	if r.DateInscription != "" && !isDay(r.DateInscription) {
		return dErrors.New(dErrors.CodeInvalidInput, "dateInscription must be YYYY-MM-DD")
	}
	return nil
}

func (r *CreateRequest) toModel() models.Entreprise {
	return models.Entreprise{
		Nom:             r.Nom,
		NINEA:           r.NINEA,
		Adresse:         r.Adresse,
		Telephone:       r.Telephone,
		Email:           r.Email,
		SecteurActivite: r.SecteurActivite,
		DateInscription: r.DateInscription,
		Statut:          r.statut,
	}
}

type UpdateRequest struct {
	Nom             *string `json:"nom"`
	Adresse         *string `json:"adresse"`
	Telephone       *string `json:"telephone"`
	Email           *string `json:"email"`
	SecteurActivite *string `json:"secteurActivite"`
	Statut          *string `json:"statut"`

	statut *models.Statut
}

func (r *UpdateRequest) Validate() error {
	if r.Statut != nil {
		st, err := models.ParseStatut(*r.Statut)
		if err != nil {
			return err
		}
		r.statut = &st
	}
	return nil
}

func (r *UpdateRequest) toPatch() models.Patch {
	return models.Patch{
		Nom:             r.Nom,
		Adresse:         r.Adresse,
		Telephone:       r.Telephone,
		Email:           r.Email,
		SecteurActivite: r.SecteurActivite,
		Statut:          r.statut,
	}
}

type listResponse struct {
	Entreprises []*models.Entreprise `json:"entreprises"`
	Total       int                  `json:"total"`
}

func isDay(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}
