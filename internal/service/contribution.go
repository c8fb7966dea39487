package service

import (
	"context"
	"fmt"
	"strconv"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	apperrors "github.com/uni-magazine/portal/internal/errors"
	"github.com/uni-magazine/portal/internal/ports"
)

// ContributionServiceOptions groups dependencies for ContributionService.
type ContributionServiceOptions struct {
	API   ports.ContributionAPI
	Cache *QueryCache
}

// ContributionService manages contributions, their review and comments.
type ContributionService struct {
	api   ports.ContributionAPI
	cache *QueryCache
}

// NewContributionService constructs a new ContributionService.
func NewContributionService(opts ContributionServiceOptions) *ContributionService {
	if opts.API == nil {
		panic("ContributionAPI is required")
	}
	return &ContributionService{api: opts.API, cache: opts.Cache}
}

// List returns contributions matching filter. Zero-valued filter fields match everything.
func (s *ContributionService) List(
	ctx context.Context,
	sess domainauth.Session,
	filter model.ContributionFilter,
) ([]model.Contribution, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.ValidationField("status", "unknown contribution status")
	}
	q := cacheQuery{entity: entityContributions, scope: sessionScope(sess), filter: filter.CacheKey()}
	out, err := readThrough(ctx, s.cache, q, func(ctx context.Context) ([]model.Contribution, error) {
		return s.api.ListContributions(ctx, token, filter)
	})
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return out, nil
}

// Get returns one contribution.
func (s *ContributionService) Get(ctx context.Context, sess domainauth.Session, id int) (model.Contribution, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Contribution{}, err
	}
	q := cacheQuery{entity: entityContributions, scope: sessionScope(sess), filter: "id=" + strconv.Itoa(id)}
	out, err := readThrough(ctx, s.cache, q, func(ctx context.Context) (model.Contribution, error) {
		return s.api.GetContribution(ctx, token, id)
	})
	if err != nil {
		return model.Contribution{}, fmt.Errorf("get contribution %d: %w", id, err)
	}
	return out, nil
}

// Create submits a contribution.
func (s *ContributionService) Create(
	ctx context.Context,
	sess domainauth.Session,
	req model.ContributionRequest,
) (model.Contribution, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Contribution{}, err
	}
	out, err := s.api.CreateContribution(ctx, token, req)
	if err != nil {
		return model.Contribution{}, fmt.Errorf("create contribution: %w", err)
	}
	s.cache.Invalidate(ctx, entityContributions)
	return out, nil
}

// Update edits a contribution.
func (s *ContributionService) Update(
	ctx context.Context,
	sess domainauth.Session,
	id int,
	req model.ContributionRequest,
) (model.Contribution, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Contribution{}, err
	}
	out, err := s.api.UpdateContribution(ctx, token, id, req)
	if err != nil {
		return model.Contribution{}, fmt.Errorf("update contribution %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, entityContributions)
	return out, nil
}

// Review accepts or rejects a contribution.
func (s *ContributionService) Review(
	ctx context.Context,
	sess domainauth.Session,
	id int,
	status model.ContributionStatus,
) (model.Contribution, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Contribution{}, err
	}
	if status != model.ContributionAccepted && status != model.ContributionRejected {
		return model.Contribution{}, apperrors.ValidationField("status", "status must be accepted or rejected")
	}
	out, err := s.api.ReviewContribution(ctx, token, id, model.ReviewRequest{Status: status})
	if err != nil {
		return model.Contribution{}, fmt.Errorf("review contribution %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, entityContributions)
	return out, nil
}

// ListComments returns the comments on a contribution.
func (s *ContributionService) ListComments(
	ctx context.Context,
	sess domainauth.Session,
	contributionID int,
) ([]model.Comment, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	q := cacheQuery{entity: entityComments, scope: sessionScope(sess), filter: "contribution=" + strconv.Itoa(contributionID)}
	out, err := readThrough(ctx, s.cache, q, func(ctx context.Context) ([]model.Comment, error) {
		return s.api.ListComments(ctx, token, contributionID)
	})
	if err != nil {
		return nil, fmt.Errorf("list comments for contribution %d: %w", contributionID, err)
	}
	return out, nil
}

// AddComment posts a comment. Contributions are bumped as well since lists show comment state.
func (s *ContributionService) AddComment(
	ctx context.Context,
	sess domainauth.Session,
	contributionID int,
	content string,
) (model.Comment, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Comment{}, err
	}
	out, err := s.api.AddComment(ctx, token, contributionID, model.CommentRequest{Content: content})
	if err != nil {
		return model.Comment{}, fmt.Errorf("add comment to contribution %d: %w", contributionID, err)
	}
	s.cache.Invalidate(ctx, entityComments, entityContributions)
	return out, nil
}
