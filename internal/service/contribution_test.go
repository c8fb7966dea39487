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

func newContributionService(t *testing.T) (*mocks.MockContributionAPI, *ContributionService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockContributionAPI(ctrl)
	cache, _ := newTestQueryCache(t)
	return api, NewContributionService(ContributionServiceOptions{API: api, Cache: cache})
}

func TestContributionService_ListByFilter(t *testing.T) {
	api, svc := newContributionService(t)
	ctx := context.Background()
	coordinator := testSession(domainauth.RoleMarketingCoordinator)
	pending := model.ContributionFilter{EventID: 3, Status: model.ContributionPending}
	all := model.ContributionFilter{EventID: 3}

	api.EXPECT().ListContributions(gomock.Any(), coordinator.BearerToken, pending).
		Return([]model.Contribution{{ID: 1, Status: model.ContributionPending}}, nil).Times(1)
	api.EXPECT().ListContributions(gomock.Any(), coordinator.BearerToken, all).
		Return([]model.Contribution{{ID: 1}, {ID: 2}}, nil).Times(1)

	for range 2 {
		got, err := svc.List(ctx, coordinator, pending)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = svc.List(ctx, coordinator, all)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
}

func TestContributionService_ListRejectsUnknownStatus(t *testing.T) {
	_, svc := newContributionService(t)

	_, err := svc.List(context.Background(), testSession(domainauth.RoleGuest), model.ContributionFilter{Status: "archived"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "status", apperrors.GetField(err))
}

func TestContributionService_Review(t *testing.T) {
	api, svc := newContributionService(t)
	ctx := context.Background()
	coordinator := testSession(domainauth.RoleMarketingCoordinator)

	_, err := svc.Review(ctx, coordinator, 1, model.ContributionPending)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	api.EXPECT().ReviewContribution(gomock.Any(), coordinator.BearerToken, 1, model.ReviewRequest{Status: model.ContributionAccepted}).
		Return(model.Contribution{ID: 1, Status: model.ContributionAccepted}, nil)

	out, err := svc.Review(ctx, coordinator, 1, model.ContributionAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.ContributionAccepted, out.Status)

	gen, err := svc.cache.store.Generation(ctx, entityContributions)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestContributionService_CommentsInvalidateBothEntities(t *testing.T) {
	api, svc := newContributionService(t)
	ctx := context.Background()
	coordinator := testSession(domainauth.RoleMarketingCoordinator)

	gomock.InOrder(
		api.EXPECT().ListComments(gomock.Any(), coordinator.BearerToken, 5).Return([]model.Comment{}, nil),
		api.EXPECT().AddComment(gomock.Any(), coordinator.BearerToken, 5, model.CommentRequest{Content: "Nice"}).
			Return(model.Comment{ID: 1, ContributionID: 5, Content: "Nice"}, nil),
		api.EXPECT().ListComments(gomock.Any(), coordinator.BearerToken, 5).
			Return([]model.Comment{{ID: 1, ContributionID: 5, Content: "Nice"}}, nil),
	)

	before, err := svc.ListComments(ctx, coordinator, 5)
	require.NoError(t, err)
	assert.Empty(t, before)

	_, err = svc.AddComment(ctx, coordinator, 5, "Nice")
	require.NoError(t, err)

	after, err := svc.ListComments(ctx, coordinator, 5)
	require.NoError(t, err)
	assert.Len(t, after, 1)

	gen, err := svc.cache.store.Generation(ctx, entityContributions)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestContributionService_CreateUpdateGet(t *testing.T) {
	api, svc := newContributionService(t)
	ctx := context.Background()
	student := testSession(domainauth.RoleStudent)
	req := model.ContributionRequest{Title: "Essay", EventID: 3}

	api.EXPECT().CreateContribution(gomock.Any(), student.BearerToken, req).Return(model.Contribution{ID: 11}, nil)
	api.EXPECT().UpdateContribution(gomock.Any(), student.BearerToken, 11, req).Return(model.Contribution{}, errors.New("Edits are closed"))
	api.EXPECT().GetContribution(gomock.Any(), student.BearerToken, 11).Return(model.Contribution{ID: 11, Title: "Essay"}, nil)

	created, err := svc.Create(ctx, student, req)
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)

	_, err = svc.Update(ctx, student, 11, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Edits are closed")

	got, err := svc.Get(ctx, student, 11)
	require.NoError(t, err)
	assert.Equal(t, "Essay", got.Title)
}
