package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	apperrors "github.com/uni-magazine/portal/internal/errors"
	"github.com/uni-magazine/portal/internal/mocks"
)

func newUserService(t *testing.T) (*mocks.MockUserAPI, *UserService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	api := mocks.NewMockUserAPI(ctrl)
	cache, _ := newTestQueryCache(t)
	return api, NewUserService(UserServiceOptions{API: api, Cache: cache})
}

func userWithRole(id int, roleName string) model.User {
	return model.User{ID: id, UserName: "u", Role: model.RoleRef{RoleName: roleName}}
}

func TestUserService_ListByRole_FiltersCaseInsensitively(t *testing.T) {
	api, svc := newUserService(t)
	admin := testSession(domainauth.RoleAdmin)

	api.EXPECT().
		ListUsers(gomock.Any(), admin.BearerToken, "student").
		Return([]model.User{
			userWithRole(1, "Student"),
			userWithRole(2, "marketing_coordinator"),
			userWithRole(3, "STUDENT"),
			userWithRole(4, "guest"),
		}, nil).
		Times(1)

	users, err := svc.ListByRole(context.Background(), admin, " Student ")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, 3, users[1].ID)

	again, err := svc.ListByRole(context.Background(), admin, "student")
	require.NoError(t, err)
	assert.Equal(t, users, again, "second read is served from cache")
}

func TestUserService_ListByRole_EmptyResult(t *testing.T) {
	api, svc := newUserService(t)
	api.EXPECT().ListUsers(gomock.Any(), gomock.Any(), "guest").Return(nil, nil)

	users, err := svc.ListByRole(context.Background(), testSession(domainauth.RoleAdmin), "guest")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserService_RequiresAuthenticatedSession(t *testing.T) {
	_, svc := newUserService(t)

	_, err := svc.ListByRole(context.Background(), domainauth.UnverifiedSession(3), "student")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	err = svc.Delete(context.Background(), domainauth.Session{}, 1)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestUserService_MutationsInvalidateLists(t *testing.T) {
	api, svc := newUserService(t)
	ctx := context.Background()
	admin := testSession(domainauth.RoleAdmin)

	gomock.InOrder(
		api.EXPECT().ListUsers(gomock.Any(), gomock.Any(), "student").
			Return([]model.User{userWithRole(1, "student")}, nil),
		api.EXPECT().CreateUser(gomock.Any(), admin.BearerToken, gomock.Any()).
			Return(userWithRole(2, "student"), nil),
		api.EXPECT().ListUsers(gomock.Any(), gomock.Any(), "student").
			Return([]model.User{userWithRole(1, "student"), userWithRole(2, "student")}, nil),
		api.EXPECT().AssignFaculty(gomock.Any(), admin.BearerToken, 2, model.AssignFacultyRequest{FacultyID: 9}).
			Return(nil),
		api.EXPECT().ListUsers(gomock.Any(), gomock.Any(), "student").
			Return([]model.User{userWithRole(1, "student"), userWithRole(2, "student")}, nil),
	)

	before, err := svc.ListByRole(ctx, admin, "student")
	require.NoError(t, err)
	assert.Len(t, before, 1)

	_, err = svc.Create(ctx, admin, model.CreateUserRequest{UserName: "new", RoleID: domainauth.RoleStudent})
	require.NoError(t, err)

	after, err := svc.ListByRole(ctx, admin, "student")
	require.NoError(t, err)
	assert.Len(t, after, 2)

	require.NoError(t, svc.AssignFaculty(ctx, admin, 2, 9))
	_, err = svc.ListByRole(ctx, admin, "student")
	require.NoError(t, err)
}

func TestUserService_FailedMutationKeepsCache(t *testing.T) {
	api, svc := newUserService(t)
	ctx := context.Background()
	admin := testSession(domainauth.RoleAdmin)

	api.EXPECT().ListUsers(gomock.Any(), gomock.Any(), "manager").
		Return([]model.User{userWithRole(5, "manager")}, nil).
		Times(1)
	api.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), 5, gomock.Any()).
		Return(model.User{}, errors.New("Email already taken"))

	_, err := svc.ListByRole(ctx, admin, "manager")
	require.NoError(t, err)

	_, err = svc.Update(ctx, admin, 5, model.UpdateUserRequest{Email: "dup@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update user 5")
	assert.Contains(t, err.Error(), "Email already taken")

	_, err = svc.ListByRole(ctx, admin, "manager")
	require.NoError(t, err)
}

func TestUserService_GetAndDelete(t *testing.T) {
	api, svc := newUserService(t)
	ctx := context.Background()
	admin := testSession(domainauth.RoleAdmin)

	api.EXPECT().GetUser(gomock.Any(), admin.BearerToken, 8).Return(userWithRole(8, "guest"), nil).Times(2)
	api.EXPECT().DeleteUser(gomock.Any(), admin.BearerToken, 8).Return(nil)

	u, err := svc.Get(ctx, admin, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, u.ID)

	require.NoError(t, svc.Delete(ctx, admin, 8))

	_, err = svc.Get(ctx, admin, 8)
	require.NoError(t, err)
}

func TestNewUserService_RequiresAPI(t *testing.T) {
	assert.Panics(t, func() { NewUserService(UserServiceOptions{}) })
}
