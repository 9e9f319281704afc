package services

// RoleAdmin is the role name the authorization collaborator uses for
// administrators. Destructive operations are gated on it.
const RoleAdmin = "Administrador"

// RoleUser is the baseline role carrying the edit capability.
const RoleUser = "user"

// Actor is the authenticated identity performing an engine operation. It is
// produced by the authorization middleware and treated as opaque facts by the
// engine: the engine only asks "does this caller hold a role".
type Actor struct {
	ID    string
	Email string
	Roles []string
}

// HasRole reports whether the actor holds the named role.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor is an Administrator.
func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// CanEdit reports whether the actor holds the edit capability.
func (a Actor) CanEdit() bool {
	return a.ID != "" && (a.HasRole(RoleUser) || a.IsAdmin())
}
