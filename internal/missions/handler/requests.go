package handler

import (
	"cdp/internal/missions/models"
	id "cdp/pkg/domain"
)

type CreateRequest struct {
	NumeroMission string   `json:"numeroMission"`
	EntrepriseID  string   `json:"entrepriseId"`
	DateMission   string   `json:"dateMission"`
	TypeMission   string   `json:"typeMission"`
	Statut        string   `json:"statut"`
	Lieu          string   `json:"lieu"`
	Equipe        []string `json:"equipe"`

	entrepriseID id.EntrepriseID
	typeMission  models.TypeMission
	statut       models.Statut
}

func (r *CreateRequest) Validate() error {
	entrepriseID, err := id.ParseEntrepriseID(r.EntrepriseID)
	if err != nil {
		return err
	}
	r.entrepriseID = entrepriseID
	t, err := models.ParseTypeMission(r.TypeMission)
	if err != nil {
		return err
	}
	r.typeMission = t
	if r.Statut != "" {
		st, err := models.ParseStatut(r.Statut)
		if err != nil {
			return err
		}
		r.statut = st
	}
	return nil
}

func (r *CreateRequest) toModel() models.Mission {
	return models.Mission{
		NumeroMission: r.NumeroMission,
		EntrepriseID:  r.entrepriseID,
		DateMission:   r.DateMission,
		Type:          r.typeMission,
		Statut:        r.statut,
		Lieu:          r.Lieu,
		Equipe:        r.Equipe,
	}
}

type UpdateRequest struct {
	Statut    *string  `json:"statut"`
	Lieu      *string  `json:"lieu"`
	Equipe    []string `json:"equipe"`
	Rapport   *string  `json:"rapport"`
	Sanctions *string  `json:"sanctions"`
	Suivi     *string  `json:"suivi"`

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

func (r *UpdateRequest) toUpdate() models.Update {
	return models.Update{
		Statut:    r.statut,
		Lieu:      r.Lieu,
		Equipe:    r.Equipe,
		Rapport:   r.Rapport,
		Sanctions: r.Sanctions,
		Suivi:     r.Suivi,
	}
}

type CourrierRequest struct {
	Sens    string `json:"sens"`
	Date    string `json:"date"`
	Objet   string `json:"objet"`
	Contenu string `json:"contenu"`
}

func (r *CourrierRequest) Validate() error {
	_, err := models.ParseSens(r.Sens)
	return err
}

func (r *CourrierRequest) toModel() models.Courrier {
	return models.Courrier{Sens: models.Sens(r.Sens), Date: r.Date, Objet: r.Objet, Contenu: r.Contenu}
}

type DeplacementRequest struct {
	Date         string   `json:"date"`
	Lieu         string   `json:"lieu"`
	Participants []string `json:"participants"`
	Observations string   `json:"observations"`
}

func (r *DeplacementRequest) Validate() error { return nil }

func (r *DeplacementRequest) toModel() models.Deplacement {
	return models.Deplacement{Date: r.Date, Lieu: r.Lieu, Participants: r.Participants, Observations: r.Observations}
}

type listResponse struct {
	Missions []*models.Mission `json:"missions"`
	Total    int               `json:"total"`
}
