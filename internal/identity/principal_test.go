package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"Election Officer", "SIR Field Officer", "Administrator", "Municipal Corporation"} {
		role, err := ParseRole(valid)
		assert.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	_, err := ParseRole("Observer")
	assert.Error(t, err)
}

func TestRoleGates(t *testing.T) {
	tests := []struct {
		role            Role
		canResolve      bool
		canDecommission bool
	}{
		{RoleElectionOfficer, true, false},
		{RoleFieldOfficer, true, false},
		{RoleAdministrator, true, true},
		{RoleMunicipalOfficer, false, true},
	}
	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.canResolve, tc.role.CanResolve())
			assert.Equal(t, tc.canDecommission, tc.role.CanDecommission())
		})
	}
}

func TestPrincipalLabel(t *testing.T) {
	p := Principal{Name: "Suresh Patel", Role: RoleFieldOfficer}
	assert.Equal(t, "Suresh Patel (SIR Field Officer)", p.Label())

	anonymous := Principal{Role: RoleAdministrator}
	assert.Equal(t, "Administrator", anonymous.Label())
}
