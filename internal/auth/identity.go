package auth

import "smartchakula/internal/model"

// Identity is the authenticated caller, passed explicitly to every service
// operation that needs one.
type Identity struct {
	UID     string
	Email   string
	Role    model.Role
	TokenID string
}

// IsZero reports whether no caller is set.
func (i Identity) IsZero() bool {
	return i.UID == ""
}

// HasRole reports whether the identity holds any of the given roles.
func (i Identity) HasRole(roles ...model.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// IdentityOf builds an identity for a stored user, for callers that act
// without a token such as the seeder.
func IdentityOf(u *model.User) Identity {
	return Identity{UID: u.UID, Email: u.Email, Role: u.Role}
}
