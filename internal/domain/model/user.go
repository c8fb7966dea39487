package model

import (
	"strings"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
)

// RoleRef is the role object embedded in user records.
type RoleRef struct {
	ID       domainauth.Role `json:"id"`
	RoleName string          `json:"role_name"`
}

// FacultyRef is the faculty object embedded in user records.
type FacultyRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is a portal account as returned by the API.
type User struct {
	ID        int                   `json:"id"`
	UserName  string                `json:"user_name"`
	FirstName string                `json:"first_name"`
	LastName  string                `json:"last_name"`
	Email     string                `json:"email"`
	Phone     string                `json:"phone,omitempty"`
	Status    domainauth.UserStatus `json:"status,omitempty"`
	Role      RoleRef               `json:"role"`
	Faculty   *FacultyRef           `json:"faculty,omitempty"`
}

// FullName returns "First Last", falling back to the user name.
func (u User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.UserName
}

// HasRoleName reports whether the embedded role name matches name case-insensitively.
func (u User) HasRoleName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Role.RoleName), strings.TrimSpace(name))
}

// FacultyName returns the assigned faculty name or "".
func (u User) FacultyName() string {
	if u.Faculty == nil {
		return ""
	}
	return u.Faculty.Name
}

// IsActive reports whether the account status is active.
func (u User) IsActive() bool { return u.Status == domainauth.UserStatusActive }

// CreateUserRequest holds the fields needed to create an account of a given role.
type CreateUserRequest struct {
	UserName  string          `json:"user_name"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Password  string          `json:"password"`
	RoleID    domainauth.Role `json:"role_id"`
	FacultyID *int            `json:"faculty_id,omitempty"`
}

// UpdateUserRequest holds mutable user fields.
type UpdateUserRequest struct {
	FirstName string                `json:"first_name"`
	LastName  string                `json:"last_name"`
	Email     string                `json:"email"`
	Phone     string                `json:"phone,omitempty"`
	Status    domainauth.UserStatus `json:"status,omitempty"`
}

// AssignFacultyRequest moves a student or guest into a faculty.
type AssignFacultyRequest struct {
	FacultyID int `json:"faculty_id"`
}
