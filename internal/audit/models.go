package audit

import (
	"time"

	id "cdp/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: demandes,
	// receipts and account lifecycle.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers authentication and authorization failures.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine activity such as draft saves.
	CategoryOperations EventCategory = "operations"
)

type Action string

const (
	ActionDemandeSubmitted     Action = "demande_submitted"
	ActionDemandeStatusChanged Action = "demande_status_changed"
	ActionDemandeDeleted       Action = "demande_deleted"
	ActionDraftSaved           Action = "draft_saved"
	ActionDraftDiscarded       Action = "draft_discarded"
	ActionEntrepriseCreated    Action = "entreprise_created"
	ActionEntrepriseDeleted    Action = "entreprise_deleted"
	ActionMissionCreated       Action = "mission_created"
	ActionMissionUpdated       Action = "mission_updated"
	ActionMissionDeleted       Action = "mission_deleted"
	ActionRecepisseIssued      Action = "recepisse_issued"
	ActionUserCreated          Action = "user_created"
	ActionUserUpdated          Action = "user_updated"
	ActionUserDeleted          Action = "user_deleted"
	ActionLoginSucceeded       Action = "login_succeeded"
	ActionLoginFailed          Action = "login_failed"
)

var actionCategories = map[Action]EventCategory{
	ActionDemandeSubmitted:     CategoryCompliance,
	ActionDemandeStatusChanged: CategoryCompliance,
	ActionDemandeDeleted:       CategoryCompliance,
	ActionRecepisseIssued:      CategoryCompliance,
	ActionUserCreated:          CategoryCompliance,
	ActionUserDeleted:          CategoryCompliance,
	ActionEntrepriseDeleted:    CategoryCompliance,

	ActionLoginFailed: CategorySecurity,
	ActionUserUpdated: CategorySecurity,
}

// Category returns the category of an action. Unknown actions are operational.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string        `json:"id"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	// UserID is the acting user, nil for anonymous actions such as failed logins.
	UserID    *id.UserID `json:"user_id,omitempty"`
	Action    Action     `json:"action"`
	Subject   string     `json:"subject,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}
