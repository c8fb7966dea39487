// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"strconv"
	"strings"
	"time"
)

// Role is the numeric role id assigned by the portal API.
type Role int

const (
	RoleUnknown              Role = 0
	RoleAdmin                Role = 1
	RoleManager              Role = 2
	RoleMarketingCoordinator Role = 3
	RoleStudent              Role = 4
	RoleGuest                Role = 5
)

// DefaultSessionTTL is the absolute lifetime of a signed-in session.
const DefaultSessionTTL = 10 * 24 * time.Hour

//nolint:gochecknoglobals // static read-only lookup
var roleNames = map[Role]string{
	RoleAdmin:                "admin",
	RoleManager:              "manager",
	RoleMarketingCoordinator: "marketing_coordinator",
	RoleStudent:              "student",
	RoleGuest:                "guest",
}

// KnownRoles returns every role the portal understands, in id order.
func KnownRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleMarketingCoordinator, RoleStudent, RoleGuest}
}

// Valid reports whether r is one of the five portal roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Name returns the lowercase role name used by the API ("marketing_coordinator", ...).
// Unknown ids yield an empty string.
func (r Role) Name() string { return roleNames[r] }

// String implements fmt.Stringer.
func (r Role) String() string {
	if n := r.Name(); n != "" {
		return n
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

// Label is the human-facing role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleManager:
		return "Marketing Manager"
	case RoleMarketingCoordinator:
		return "Marketing Coordinator"
	case RoleStudent:
		return "Student"
	case RoleGuest:
		return "Guest"
	default:
		return "Unknown"
	}
}

// ParseRoleName maps a role name to a Role, case-insensitively.
// "coordinator" is accepted as shorthand for marketing_coordinator.
func ParseRoleName(name string) (Role, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "coordinator" || n == "marketing coordinator" {
		return RoleMarketingCoordinator, true
	}
	for r, rn := range roleNames {
		if rn == n {
			return r, true
		}
	}
	return RoleUnknown, false
}

// UserStatus is the account status reported by the API.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// UserIdentity is the signed-in user's profile as returned on login.
// It is replaced wholesale on every login and never patched in place.
type UserIdentity struct {
	UserID    int        `json:"user_id"`
	UserName  string     `json:"user_name,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	RoleID    Role       `json:"role_id,omitempty"`
	Status    UserStatus `json:"status,omitempty"`
	FacultyID *int       `json:"faculty_id,omitempty"`
}

// DisplayName returns "First Last", falling back to the user name.
func (u UserIdentity) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.UserName
}

// Session is the client-held proof of authentication plus cached identity.
// Invariant: when IsAuthenticated is false, BearerToken is empty and User carries only UserID.
type Session struct {
	ID              string       `json:"id,omitempty"`
	BearerToken     string       `json:"bearer_token"`
	IsAuthenticated bool         `json:"is_authenticated"`
	User            UserIdentity `json:"user"`
	ExpiresAt       time.Time    `json:"expires_at"`
}

// UnverifiedSession builds the partial session returned for accounts awaiting OTP verification.
func UnverifiedSession(userID int) Session {
	return Session{User: UserIdentity{UserID: userID}}
}

// Valid reports whether the session grants access to protected pages at now.
func (s Session) Valid(now time.Time) bool {
	if !s.IsAuthenticated || s.BearerToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Expired reports whether the session has an expiry that is not after now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Role returns the role of the signed-in user.
func (s Session) Role() Role { return s.User.RoleID }

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.User.RoleID == RoleGuest }
