// Package models defines the client-side data models of ganfan: household
// members, their sessions, and the dishes, dinners, orders and reviews they
// work with.
package models

import (
	"fmt"
	"time"
)

// Role classifies a household member.
type Role string

const (
	// RoleChef manages dishes, dinners and members.
	RoleChef Role = "chef"
	// RoleDiner orders dishes and leaves reviews.
	RoleDiner Role = "diner"
)

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleChef, RoleDiner:
		return true
	}
	return false
}

// CanManage reports whether the role may manage dishes, dinners and members.
func (r Role) CanManage() bool {
	switch r {
	case RoleChef:
		return true
	case RoleDiner:
		return false
	}
	return false
}

// Label is the human readable name shown in the terminal.
func (r Role) Label() string {
	switch r {
	case RoleChef:
		return "chef"
	case RoleDiner:
		return "diner"
	}
	return "unknown"
}

// User is a household member account.
type User struct {
	// ID is a globally unique identifier.
	ID string
	// Nickname is unique within the household and shown on the login screen.
	Nickname string
	// Role decides what the member may do.
	Role Role
	// PasswordHash is the bcrypt digest of the PIN; empty until set.
	PasswordHash string
	// IsFirstLogin is true until the member sets a PIN.
	IsFirstLogin bool
	// CreatedAt is the creation time.
	CreatedAt time.Time
}
