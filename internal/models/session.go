package models

// Session is the authenticated identity held by a client
type Session struct {
	UserID   string
	Token    string
	Username string
	Role     Role
}

// IsAdmin reports whether the session was granted the admin role
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Credentials are the inputs of a login
type Credentials struct {
	Name     string
	Password string
}

// SignUpRequest holds the inputs of an account registration
type SignUpRequest struct {
	Name     string
	Email    string
	Password string
}
