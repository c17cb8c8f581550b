package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "cdp/pkg/domain-errors"
)

func TestParseRole(t *testing.T) {
	for input, want := range map[string]Role{
		"admin":     RoleAdmin,
		"demandeur": RoleDemandeur,
		"agent_cdp": RoleAgentCDP,
		"agent cdp": RoleAgentCDP,
		" ADMIN ":   RoleAdmin,
	} {
		got, err := ParseRole(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseRole("superuser")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestCan(t *testing.T) {
	t.Run("admin manages users", func(t *testing.T) {
		assert.True(t, Can(RoleAdmin, PermManageUsers))
	})
	t.Run("agent processes demandes but cannot manage users", func(t *testing.T) {
		assert.True(t, Can(RoleAgentCDP, PermProcessDemande))
		assert.False(t, Can(RoleAgentCDP, PermManageUsers))
		assert.False(t, Can(RoleAgentCDP, PermViewAudit))
	})
	t.Run("demandeur submits but cannot process", func(t *testing.T) {
		assert.True(t, Can(RoleDemandeur, PermSubmitDemande))
		assert.False(t, Can(RoleDemandeur, PermProcessDemande))
		assert.False(t, Can(RoleDemandeur, PermViewStatistics))
	})
	t.Run("unknown role grants nothing", func(t *testing.T) {
		assert.False(t, Can(Role("root"), PermViewDemandes))
	})
}
