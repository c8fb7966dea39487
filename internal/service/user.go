package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	"github.com/uni-magazine/portal/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	API   ports.UserAPI
	Cache *QueryCache
}

// UserService manages portal accounts.
type UserService struct {
	api   ports.UserAPI
	cache *QueryCache
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.API == nil {
		panic("UserAPI is required")
	}
	return &UserService{api: opts.API, cache: opts.Cache}
}

// ListByRole returns users whose role name matches role case-insensitively.
// The result is filtered locally even when the API already filtered.
func (s *UserService) ListByRole(ctx context.Context, sess domainauth.Session, role string) ([]model.User, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	role = strings.ToLower(strings.TrimSpace(role))
	q := cacheQuery{entity: entityUsers, scope: sessionScope(sess), filter: "role=" + role}
	users, err := readThrough(ctx, s.cache, q, func(ctx context.Context) ([]model.User, error) {
		return s.api.ListUsers(ctx, token, role)
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return filterByRole(users, role), nil
}

func filterByRole(users []model.User, role string) []model.User {
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.HasRoleName(role) {
			out = append(out, u)
		}
	}
	return out
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, sess domainauth.Session, id int) (model.User, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.User{}, err
	}
	q := cacheQuery{entity: entityUsers, scope: sessionScope(sess), filter: "id=" + strconv.Itoa(id)}
	user, err := readThrough(ctx, s.cache, q, func(ctx context.Context) (model.User, error) {
		return s.api.GetUser(ctx, token, id)
	})
	if err != nil {
		return model.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// Create creates an account.
func (s *UserService) Create(ctx context.Context, sess domainauth.Session, req model.CreateUserRequest) (model.User, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.User{}, err
	}
	user, err := s.api.CreateUser(ctx, token, req)
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	s.cache.Invalidate(ctx, entityUsers)
	return user, nil
}

// Update changes an account's mutable fields.
func (s *UserService) Update(
	ctx context.Context,
	sess domainauth.Session,
	id int,
	req model.UpdateUserRequest,
) (model.User, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.User{}, err
	}
	user, err := s.api.UpdateUser(ctx, token, id, req)
	if err != nil {
		return model.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, entityUsers)
	return user, nil
}

// Delete removes an account. Contributions are bumped because they embed the student.
func (s *UserService) Delete(ctx context.Context, sess domainauth.Session, id int) error {
	token, err := bearerToken(sess)
	if err != nil {
		return err
	}
	if err := s.api.DeleteUser(ctx, token, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, entityUsers, entityContributions)
	return nil
}

// AssignFaculty moves a user into a faculty.
func (s *UserService) AssignFaculty(ctx context.Context, sess domainauth.Session, userID, facultyID int) error {
	token, err := bearerToken(sess)
	if err != nil {
		return err
	}
	if err := s.api.AssignFaculty(ctx, token, userID, model.AssignFacultyRequest{FacultyID: facultyID}); err != nil {
		return fmt.Errorf("assign faculty to user %d: %w", userID, err)
	}
	s.cache.Invalidate(ctx, entityUsers)
	return nil
}
