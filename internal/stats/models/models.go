package models

import "time"

// Dashboard is the aggregate shown on the back-office landing page.
type Dashboard struct {
	TotalDemandes      int       `json:"totalDemandes"`
	DemandesEnAttente  int       `json:"demandesEnAttente"`
	DemandesApprouvees int       `json:"demandesApprouvees"`
	TotalEntreprises   int       `json:"totalEntreprises"`
	MissionsEnCours    int       `json:"missionsEnCours"`
	MissionsPlanifiees int       `json:"missionsPlanifiees"`
	RecepissesValides  int       `json:"recepissesValides"`
	ComputedAt         time.Time `json:"computedAt"`
}
