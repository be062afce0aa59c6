package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

// Role represents an application's authorization role.
// The backend does not fix the set of roles; these are the ones the dashboard gates on.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleStaff     Role = "staff"
)

// String returns the role name.
func (r Role) String() string { return string(r) }

// Credentials are submitted to the backend login endpoint.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the persisted unit: an opaque bearer token plus the profile snapshot
// returned alongside it. Token is never inspected for validity or expiry.
type Session struct {
	Token   string
	Profile Profile
}

// State is the principal-level authentication state.
type State int

const (
	// StateUnauthenticated means no usable session exists for the scope.
	StateUnauthenticated State = iota
	// StateAuthenticated means a token and a readable profile exist.
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "unauthenticated"
}
