package domain

import (
	"strings"

	dErrors "cdp/pkg/domain-errors"
)

// Role is the enumerated account role.
// Invariant: construct via ParseRole at trust boundaries.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDemandeur Role = "demandeur"
	RoleAgentCDP  Role = "agent_cdp"
)

// ParseRole accepts the canonical values plus the legacy "agent cdp" label.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "demandeur":
		return RoleDemandeur, nil
	case "agent_cdp", "agent cdp":
		return RoleAgentCDP, nil
	case "":
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleDemandeur || r == RoleAgentCDP
}

func (r Role) String() string {
	return string(r)
}

// Permission names an action gated by role.
type Permission string

const (
	PermSubmitDemande     Permission = "demande:submit"
	PermViewDemandes      Permission = "demande:view"
	PermProcessDemande    Permission = "demande:process"
	PermDeleteDemande     Permission = "demande:delete"
	PermManageEntreprises Permission = "entreprise:manage"
	PermViewEntreprises   Permission = "entreprise:view"
	PermManageMissions    Permission = "mission:manage"
	PermViewMissions      Permission = "mission:view"
	PermIssueRecepisse    Permission = "recepisse:issue"
	PermViewRecepisses    Permission = "recepisse:view"
	PermViewStatistics    Permission = "stats:view"
	PermManageUsers       Permission = "user:manage"
	PermViewSettings      Permission = "settings:view"
	PermViewAudit         Permission = "audit:view"
)

var permissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermSubmitDemande: true, PermViewDemandes: true, PermProcessDemande: true,
		PermDeleteDemande: true, PermManageEntreprises: true, PermViewEntreprises: true,
		PermManageMissions: true, PermViewMissions: true, PermIssueRecepisse: true,
		PermViewRecepisses: true, PermViewStatistics: true, PermManageUsers: true,
		PermViewSettings: true, PermViewAudit: true,
	},
	RoleAgentCDP: {
		PermViewDemandes: true, PermProcessDemande: true, PermManageEntreprises: true,
		PermViewEntreprises: true, PermManageMissions: true, PermViewMissions: true,
		PermIssueRecepisse: true, PermViewRecepisses: true, PermViewStatistics: true,
	},
	RoleDemandeur: {
		PermSubmitDemande: true, PermViewDemandes: true, PermViewRecepisses: true,
	},
}

// Can reports whether role grants perm. Unknown roles grant nothing.
func Can(role Role, perm Permission) bool {
	return permissions[role][perm]
}
