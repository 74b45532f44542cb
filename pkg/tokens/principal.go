package tokens

import "slices"

const AdminRole = "ADMIN"

// Principal is the authenticated caller passed explicitly into authorization checks.
type Principal struct {
	ClientID uint
	Email    string
	Roles    []string
}

func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Roles, role)
}

func (p *Principal) IsAdmin() bool { return p.HasRole(AdminRole) }

// CanAccessClient reports whether p may read or modify the client with the given id.
func (p *Principal) CanAccessClient(clientID uint) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || p.ClientID == clientID
}
