// Package mocks provides mock implementations for testing the portal services and handlers.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockUserAPI(ctrl)
//	api.EXPECT().ListUsers(gomock.Any(), "token", "student").Return(users, nil)
package mocks

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods for all SessionStore interface methods:
// Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/uni-magazine/portal/internal/ports SessionStore

// Generate mock for CredentialAuthenticator interface from internal/ports package.
// This creates MockCredentialAuthenticator with methods for all CredentialAuthenticator interface methods:
// Authenticate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_authenticator_mock.go github.com/uni-magazine/portal/internal/ports CredentialAuthenticator

// Generate mock for AccountAPI interface from internal/ports package.
// This creates MockAccountAPI with methods for all AccountAPI interface methods:
// Register, VerifyOTP, ResendVerification, ForgotPassword, ResetPassword
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=account_api_mock.go github.com/uni-magazine/portal/internal/ports AccountAPI

// Generate mock for UserAPI interface from internal/ports package.
// This creates MockUserAPI with methods for all UserAPI interface methods:
// ListUsers, GetUser, CreateUser, UpdateUser, DeleteUser, AssignFaculty
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_api_mock.go github.com/uni-magazine/portal/internal/ports UserAPI

// Generate mock for FacultyAPI interface from internal/ports package.
// This creates MockFacultyAPI with methods for all FacultyAPI interface methods:
// ListFaculties, GetFaculty, CreateFaculty, UpdateFaculty
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=faculty_api_mock.go github.com/uni-magazine/portal/internal/ports FacultyAPI

// Generate mock for EventAPI interface from internal/ports package.
// This creates MockEventAPI with methods for all EventAPI interface methods:
// ListEvents, GetEvent, CreateEvent, UpdateEvent, DeleteEvent
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=event_api_mock.go github.com/uni-magazine/portal/internal/ports EventAPI

// Generate mock for ContributionAPI interface from internal/ports package.
// This creates MockContributionAPI with methods for all ContributionAPI interface methods:
// ListContributions, GetContribution, CreateContribution, UpdateContribution,
// ReviewContribution, ListComments, AddComment
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=contribution_api_mock.go github.com/uni-magazine/portal/internal/ports ContributionAPI

// Generate mock for QueryCacheStore interface from internal/ports package.
// This creates MockQueryCacheStore with methods for all QueryCacheStore interface methods:
// Get, Set, Generation, Bump
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=query_cache_store_mock.go github.com/uni-magazine/portal/internal/ports QueryCacheStore
