package ports

import (
	"context"

	"github.com/uni-magazine/portal/internal/domain/model"
)

// Every authenticated call takes the caller's bearer token explicitly.

// AccountAPI covers the public self-service endpoints. None of them take a token.
type AccountAPI interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResult, error)
	VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) error
	ResendVerification(ctx context.Context, req model.ResendVerificationRequest) error
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error
}

// UserAPI manages portal accounts.
type UserAPI interface {
	ListUsers(ctx context.Context, token, role string) ([]model.User, error)
	GetUser(ctx context.Context, token string, id int) (model.User, error)
	CreateUser(ctx context.Context, token string, req model.CreateUserRequest) (model.User, error)
	UpdateUser(ctx context.Context, token string, id int, req model.UpdateUserRequest) (model.User, error)
	DeleteUser(ctx context.Context, token string, id int) error
	AssignFaculty(ctx context.Context, token string, userID int, req model.AssignFacultyRequest) error
}

// FacultyAPI manages faculties.
type FacultyAPI interface {
	ListFaculties(ctx context.Context, token string) ([]model.Faculty, error)
	GetFaculty(ctx context.Context, token string, id int) (model.Faculty, error)
	CreateFaculty(ctx context.Context, token string, req model.FacultyRequest) (model.Faculty, error)
	UpdateFaculty(ctx context.Context, token string, id int, req model.FacultyRequest) (model.Faculty, error)
}

// EventAPI manages magazine events.
type EventAPI interface {
	ListEvents(ctx context.Context, token string) ([]model.Event, error)
	GetEvent(ctx context.Context, token string, id int) (model.Event, error)
	CreateEvent(ctx context.Context, token string, req model.EventRequest) (model.Event, error)
	UpdateEvent(ctx context.Context, token string, id int, req model.EventRequest) (model.Event, error)
	DeleteEvent(ctx context.Context, token string, id int) error
}

// ContributionAPI manages contributions, their review status and comments.
type ContributionAPI interface {
	ListContributions(ctx context.Context, token string, filter model.ContributionFilter) ([]model.Contribution, error)
	GetContribution(ctx context.Context, token string, id int) (model.Contribution, error)
	CreateContribution(ctx context.Context, token string, req model.ContributionRequest) (model.Contribution, error)
	UpdateContribution(
		ctx context.Context,
		token string,
		id int,
		req model.ContributionRequest,
	) (model.Contribution, error)
	ReviewContribution(ctx context.Context, token string, id int, req model.ReviewRequest) (model.Contribution, error)
	ListComments(ctx context.Context, token string, contributionID int) ([]model.Comment, error)
	AddComment(ctx context.Context, token string, contributionID int, req model.CommentRequest) (model.Comment, error)
}

// PortalAPI is the full client surface.
type PortalAPI interface {
	CredentialAuthenticator
	AccountAPI
	UserAPI
	FacultyAPI
	EventAPI
	ContributionAPI
}
