package portalapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/uni-magazine/portal/internal/domain/model"
)

// ListUsers returns users, filtered server-side by role name when role is set.
func (c *Client) ListUsers(ctx context.Context, token, role string) ([]model.User, error) {
	var q url.Values
	if r := strings.TrimSpace(role); r != "" {
		q = url.Values{"role": {r}}
	}
	var out []model.User
	err := c.do(ctx, request{op: "users.list", method: http.MethodGet, path: "/users", query: q, token: token}, &out)
	return out, err
}

// GetUser fetches one user.
func (c *Client) GetUser(ctx context.Context, token string, id int) (model.User, error) {
	var out model.User
	err := c.do(ctx, request{op: "users.get", method: http.MethodGet, path: userPath(id), token: token}, &out)
	return out, err
}

// CreateUser creates a user of req.RoleID.
func (c *Client) CreateUser(ctx context.Context, token string, req model.CreateUserRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, request{op: "users.create", method: http.MethodPost, path: "/users", token: token, body: req}, &out)
	return out, err
}

// UpdateUser replaces the mutable fields of a user.
func (c *Client) UpdateUser(ctx context.Context, token string, id int, req model.UpdateUserRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, request{op: "users.update", method: http.MethodPut, path: userPath(id), token: token, body: req}, &out)
	return out, err
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{op: "users.delete", method: http.MethodDelete, path: userPath(id), token: token}, nil)
}

// AssignFaculty moves a student or guest into a faculty.
func (c *Client) AssignFaculty(ctx context.Context, token string, userID int, req model.AssignFacultyRequest) error {
	return c.do(ctx, request{
		op:     "users.assign_faculty",
		method: http.MethodPut,
		path:   userPath(userID) + "/faculty",
		token:  token,
		body:   req,
	}, nil)
}

func userPath(id int) string { return "/users/" + strconv.Itoa(id) }
