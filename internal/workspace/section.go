package workspace

import (
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
)

// Section is the active view of a workspace.
type Section string

const (
	SectionDashboard    Section = "dashboard"
	SectionDemandes     Section = "demandes"
	SectionBaseDonnees  Section = "base-donnees"
	SectionMissions     Section = "missions"
	SectionRecepisses   Section = "recepisses"
	SectionStatistiques Section = "statistiques"
	SectionParametres   Section = "parametres"
)

// sectionPermissions gates navigation. The dashboard is open to every role.
var sectionPermissions = map[Section]id.Permission{
	SectionDemandes:     id.PermViewDemandes,
	SectionBaseDonnees:  id.PermViewEntreprises,
	SectionMissions:     id.PermViewMissions,
	SectionRecepisses:   id.PermViewRecepisses,
	SectionStatistiques: id.PermViewStatistics,
	SectionParametres:   id.PermViewSettings,
}

func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if sec == SectionDashboard {
		return sec, nil
	}
	if _, ok := sectionPermissions[sec]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown section: "+s)
	}
	return sec, nil
}

// Allows reports whether role may open the section.
func (s Section) Allows(role id.Role) bool {
	perm, gated := sectionPermissions[s]
	if !gated {
		return s == SectionDashboard && role.IsValid()
	}
	return id.Can(role, perm)
}
