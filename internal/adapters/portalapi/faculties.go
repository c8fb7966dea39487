package portalapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/uni-magazine/portal/internal/domain/model"
)

// ListFaculties returns every faculty.
func (c *Client) ListFaculties(ctx context.Context, token string) ([]model.Faculty, error) {
	var out []model.Faculty
	err := c.do(ctx, request{op: "faculties.list", method: http.MethodGet, path: "/faculties", token: token}, &out)
	return out, err
}

// GetFaculty fetches one faculty.
func (c *Client) GetFaculty(ctx context.Context, token string, id int) (model.Faculty, error) {
	var out model.Faculty
	err := c.do(ctx, request{op: "faculties.get", method: http.MethodGet, path: facultyPath(id), token: token}, &out)
	return out, err
}

// CreateFaculty creates a faculty.
func (c *Client) CreateFaculty(ctx context.Context, token string, req model.FacultyRequest) (model.Faculty, error) {
	var out model.Faculty
	err := c.do(ctx, request{
		op:     "faculties.create",
		method: http.MethodPost,
		path:   "/faculties",
		token:  token,
		body:   req,
	}, &out)
	return out, err
}

// UpdateFaculty updates a faculty.
func (c *Client) UpdateFaculty(ctx context.Context, token string, id int, req model.FacultyRequest) (model.Faculty, error) {
	var out model.Faculty
	err := c.do(ctx, request{
		op:     "faculties.update",
		method: http.MethodPut,
		path:   facultyPath(id),
		token:  token,
		body:   req,
	}, &out)
	return out, err
}

func facultyPath(id int) string { return "/faculties/" + strconv.Itoa(id) }
