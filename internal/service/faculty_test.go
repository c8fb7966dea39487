package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	"github.com/uni-magazine/portal/internal/mocks"
)

func TestFacultyService_ListCreateUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockFacultyAPI(ctrl)
	cache, _ := newTestQueryCache(t)
	svc := NewFacultyService(FacultyServiceOptions{API: api, Cache: cache})
	ctx := context.Background()
	admin := testSession(domainauth.RoleAdmin)

	gomock.InOrder(
		api.EXPECT().ListFaculties(gomock.Any(), admin.BearerToken).
			Return([]model.Faculty{{ID: 1, Name: "Engineering"}}, nil),
		api.EXPECT().CreateFaculty(gomock.Any(), admin.BearerToken, model.FacultyRequest{Name: "Arts"}).
			Return(model.Faculty{ID: 2, Name: "Arts"}, nil),
		api.EXPECT().ListFaculties(gomock.Any(), admin.BearerToken).
			Return([]model.Faculty{{ID: 1, Name: "Engineering"}, {ID: 2, Name: "Arts"}}, nil),
		api.EXPECT().UpdateFaculty(gomock.Any(), admin.BearerToken, 2, model.FacultyRequest{Name: "Fine Arts"}).
			Return(model.Faculty{ID: 2, Name: "Fine Arts"}, nil),
		api.EXPECT().GetFaculty(gomock.Any(), admin.BearerToken, 2).
			Return(model.Faculty{ID: 2, Name: "Fine Arts"}, nil),
	)

	list, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	cached, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	_, err = svc.Create(ctx, admin, model.FacultyRequest{Name: "Arts"})
	require.NoError(t, err)

	list, err = svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	updated, err := svc.Update(ctx, admin, 2, model.FacultyRequest{Name: "Fine Arts"})
	require.NoError(t, err)
	assert.Equal(t, "Fine Arts", updated.Name)

	got, err := svc.Get(ctx, admin, 2)
	require.NoError(t, err)
	assert.Equal(t, "Fine Arts", got.Name)
}

func TestFacultyService_CacheIsPerSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockFacultyAPI(ctrl)
	cache, _ := newTestQueryCache(t)
	svc := NewFacultyService(FacultyServiceOptions{API: api, Cache: cache})

	api.EXPECT().ListFaculties(gomock.Any(), gomock.Any()).Return([]model.Faculty{{ID: 1}}, nil).Times(2)

	_, err := svc.List(context.Background(), testSession(domainauth.RoleAdmin))
	require.NoError(t, err)
	_, err = svc.List(context.Background(), testSession(domainauth.RoleManager))
	require.NoError(t, err)
}
