// Package identity models the acting principal supplied by the authentication
// collaborator. Session and credential exchange stay outside this service; the
// core only consumes a resolved principal and gates workflow operations by role.
package identity

import (
	dErrors "voteguard/pkg/domain-errors"
)

// Role determines which workflow operations a principal may invoke. The display
// strings match the commission's role register and appear in audit trails.
type Role string

const (
	RoleElectionOfficer  Role = "Election Officer"
	RoleFieldOfficer     Role = "SIR Field Officer"
	RoleAdministrator    Role = "Administrator"
	RoleMunicipalOfficer Role = "Municipal Corporation"
)

// ParseRole validates a role claim from an external token.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleElectionOfficer, RoleFieldOfficer, RoleAdministrator, RoleMunicipalOfficer:
		return Role(s), nil
	}
	return "", dErrors.New(dErrors.CodeUnauthorized, "unrecognized role claim")
}

// CanResolve reports whether the role may commit verification outcomes.
func (r Role) CanResolve() bool {
	switch r {
	case RoleElectionOfficer, RoleFieldOfficer, RoleAdministrator:
		return true
	}
	return false
}

// CanDecommission reports whether the role may archive records through the
// civil-registry path.
func (r Role) CanDecommission() bool {
	switch r {
	case RoleMunicipalOfficer, RoleAdministrator:
		return true
	}
	return false
}

// Principal is the resolved actor for a request.
type Principal struct {
	ID       string
	Name     string
	Role     Role
	District string
}

// Label is the role-qualified display name recorded in resolution history.
func (p Principal) Label() string {
	if p.Name == "" {
		return string(p.Role)
	}
	return p.Name + " (" + string(p.Role) + ")"
}
