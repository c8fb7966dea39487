package portalapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/uni-magazine/portal/internal/domain/model"
)

// ListContributions returns contributions, optionally narrowed by event and status.
func (c *Client) ListContributions(
	ctx context.Context,
	token string,
	filter model.ContributionFilter,
) ([]model.Contribution, error) {
	q := url.Values{}
	if filter.EventID > 0 {
		q.Set("event_id", strconv.Itoa(filter.EventID))
	}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	var out []model.Contribution
	err := c.do(ctx, request{
		op:     "contributions.list",
		method: http.MethodGet,
		path:   "/contributions",
		query:  q,
		token:  token,
	}, &out)
	return out, err
}

// GetContribution fetches one contribution.
func (c *Client) GetContribution(ctx context.Context, token string, id int) (model.Contribution, error) {
	var out model.Contribution
	err := c.do(ctx, request{
		op:     "contributions.get",
		method: http.MethodGet,
		path:   contributionPath(id),
		token:  token,
	}, &out)
	return out, err
}

// CreateContribution submits a new contribution for the calling student.
func (c *Client) CreateContribution(
	ctx context.Context,
	token string,
	req model.ContributionRequest,
) (model.Contribution, error) {
	var out model.Contribution
	err := c.do(ctx, request{
		op:     "contributions.create",
		method: http.MethodPost,
		path:   "/contributions",
		token:  token,
		body:   req,
	}, &out)
	return out, err
}

// UpdateContribution edits a contribution.
func (c *Client) UpdateContribution(
	ctx context.Context,
	token string,
	id int,
	req model.ContributionRequest,
) (model.Contribution, error) {
	var out model.Contribution
	err := c.do(ctx, request{
		op:     "contributions.update",
		method: http.MethodPut,
		path:   contributionPath(id),
		token:  token,
		body:   req,
	}, &out)
	return out, err
}

// ReviewContribution accepts or rejects a contribution.
func (c *Client) ReviewContribution(
	ctx context.Context,
	token string,
	id int,
	req model.ReviewRequest,
) (model.Contribution, error) {
	var out model.Contribution
	err := c.do(ctx, request{
		op:     "contributions.review",
		method: http.MethodPut,
		path:   contributionPath(id) + "/status",
		token:  token,
		body:   req,
	}, &out)
	return out, err
}

// ListComments returns the comments on a contribution, oldest first.
func (c *Client) ListComments(ctx context.Context, token string, contributionID int) ([]model.Comment, error) {
	var out []model.Comment
	err := c.do(ctx, request{
		op:     "comments.list",
		method: http.MethodGet,
		path:   contributionPath(contributionID) + "/comments",
		token:  token,
	}, &out)
	return out, err
}

// AddComment posts a comment on a contribution.
func (c *Client) AddComment(
	ctx context.Context,
	token string,
	contributionID int,
	req model.CommentRequest,
) (model.Comment, error) {
	var out model.Comment
	err := c.do(ctx, request{
		op:     "comments.create",
		method: http.MethodPost,
		path:   contributionPath(contributionID) + "/comments",
		token:  token,
		body:   req,
	}, &out)
	return out, err
}

func contributionPath(id int) string { return "/contributions/" + strconv.Itoa(id) }
