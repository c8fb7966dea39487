package viewmodel

import (
	"github.com/uni-magazine/portal/internal/domain/access"
	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
)

// User represents the signed-in user exposed to templates.
type User struct {
	ID        int
	Name      string
	Email     string
	Role      domainauth.Role
	RoleLabel string
}

// Layout captures shared chrome metadata (titles, navigation, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Navigation      []access.NavigationSection
	Can             access.Capabilities
}
