// Package models defines the domain types shared by the directory store,
// the profile editor and the HTTP layer.
package models

import (
	"fmt"
	"strings"
)

// Role is the kind of account chosen at login. It never changes afterwards.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

// ParseRole accepts "student" or "faculty" (case-insensitive). An empty value
// defaults to student, matching the login form's initial selection.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(RoleStudent):
		return RoleStudent, nil
	case string(RoleFaculty):
		return RoleFaculty, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// User is the identity fabricated at login. It is not checked against any
// directory.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"type"`
}

// IsFaculty reports whether the user logged in as faculty.
func (u User) IsFaculty() bool {
	return u.Role == RoleFaculty
}

// NameFromEmail derives a display name from the local part of an email.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
