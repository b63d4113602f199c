package models

import "time"

// Role is the authorization level carried by a session
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a registered account in the system
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginSession represents a server-side login session referenced by a token
type LoginSession struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *LoginSession) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// IssuedSession is a login session together with the signed token handed to the client
type IssuedSession struct {
	Session LoginSession
	Token   string
}
