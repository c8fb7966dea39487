package access

import (
	"time"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
)

// These predicates decide what is rendered, not what is permitted.
// The portal API re-checks every call.

// CanReview reports whether role may accept or reject contributions.
func CanReview(role domainauth.Role) bool {
	return role == domainauth.RoleMarketingCoordinator
}

// CanComment reports whether role may comment on contributions.
func CanComment(role domainauth.Role) bool {
	return role == domainauth.RoleMarketingCoordinator
}

// CanManageFaculty reports whether role may create or edit faculties.
func CanManageFaculty(role domainauth.Role) bool {
	return role == domainauth.RoleAdmin
}

// CanAssignFaculty reports whether role may move students or guests between faculties.
func CanAssignFaculty(role domainauth.Role) bool {
	return role == domainauth.RoleAdmin || role == domainauth.RoleManager
}

// CanManageEvents reports whether role may create, edit or delete magazine events.
func CanManageEvents(role domainauth.Role) bool {
	return role == domainauth.RoleAdmin || role == domainauth.RoleManager
}

// CanDownloadContributions reports whether role sees the bulk download action.
func CanDownloadContributions(role domainauth.Role) bool {
	return role == domainauth.RoleManager
}

// CanViewContributions reports whether role may open the contributions screens.
func CanViewContributions(role domainauth.Role) bool {
	return role.Valid()
}

// CanViewUsers reports whether actor may list accounts of the target role.
// Coordinators see the students of their faculty.
func CanViewUsers(actor, target domainauth.Role) bool {
	if CanManageUsers(actor, target) {
		return true
	}
	return actor == domainauth.RoleMarketingCoordinator && target == domainauth.RoleStudent
}

// CanManageUsers reports whether actor may create, edit or delete accounts of the target role.
func CanManageUsers(actor, target domainauth.Role) bool {
	switch actor {
	case domainauth.RoleAdmin:
		return target.Valid()
	case domainauth.RoleManager:
		return target == domainauth.RoleStudent || target == domainauth.RoleMarketingCoordinator
	default:
		return false
	}
}

// CanSubmitContribution reports whether role may submit a new contribution to ev at now.
func CanSubmitContribution(role domainauth.Role, ev model.Event, now time.Time) bool {
	return role == domainauth.RoleStudent && ev.IsOpenForSubmission(now)
}

// EditCheck groups the inputs of CanEditContribution.
type EditCheck struct {
	Role         domainauth.Role
	ActorID      int
	Contribution model.Contribution
	Event        model.Event
	Now          time.Time
}

// CanEditContribution reports whether a student may edit their own contribution:
// it must be pending or rejected and the event must still accept edits.
func CanEditContribution(c EditCheck) bool {
	if c.Role != domainauth.RoleStudent {
		return false
	}
	if c.ActorID == 0 || c.Contribution.Student.ID != c.ActorID {
		return false
	}
	return c.Contribution.EditableStatus() && c.Event.IsOpenForEdit(c.Now)
}

// Capabilities bundles the role-only predicates for templates.
type Capabilities struct {
	Review             bool
	Comment            bool
	ManageFaculty      bool
	AssignFaculty      bool
	ManageEvents       bool
	DownloadZip        bool
	ViewContributions  bool
	SubmitContribution bool
}

// CapabilitiesFor evaluates every role-only predicate once.
func CapabilitiesFor(role domainauth.Role) Capabilities {
	return Capabilities{
		Review:             CanReview(role),
		Comment:            CanComment(role),
		ManageFaculty:      CanManageFaculty(role),
		AssignFaculty:      CanAssignFaculty(role),
		ManageEvents:       CanManageEvents(role),
		DownloadZip:        CanDownloadContributions(role),
		ViewContributions:  CanViewContributions(role),
		SubmitContribution: role == domainauth.RoleStudent,
	}
}
