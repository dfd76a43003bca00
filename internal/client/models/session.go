package models

import "time"

// Session is client-held proof of a successful login.
type Session struct {
	UserID    string
	Nickname  string
	Role      Role
	ExpiresAt time.Time
}

// NewSession derives a session for u that expires at exp.
func NewSession(u User, exp time.Time) Session {
	return Session{UserID: u.ID, Nickname: u.Nickname, Role: u.Role, ExpiresAt: exp}
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
