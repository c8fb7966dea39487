package portalapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/uni-magazine/portal/internal/domain/model"
)

// ListEvents returns magazine events visible to the caller.
func (c *Client) ListEvents(ctx context.Context, token string) ([]model.Event, error) {
	var out []model.Event
	err := c.do(ctx, request{op: "events.list", method: http.MethodGet, path: "/events", token: token}, &out)
	return out, err
}

// GetEvent fetches one event.
func (c *Client) GetEvent(ctx context.Context, token string, id int) (model.Event, error) {
	var out model.Event
	err := c.do(ctx, request{op: "events.get", method: http.MethodGet, path: eventPath(id), token: token}, &out)
	return out, err
}

// CreateEvent creates an event.
func (c *Client) CreateEvent(ctx context.Context, token string, req model.EventRequest) (model.Event, error) {
	var out model.Event
	err := c.do(ctx, request{op: "events.create", method: http.MethodPost, path: "/events", token: token, body: req}, &out)
	return out, err
}

// UpdateEvent updates an event.
func (c *Client) UpdateEvent(ctx context.Context, token string, id int, req model.EventRequest) (model.Event, error) {
	var out model.Event
	err := c.do(ctx, request{op: "events.update", method: http.MethodPut, path: eventPath(id), token: token, body: req}, &out)
	return out, err
}

// DeleteEvent deletes an event.
func (c *Client) DeleteEvent(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{op: "events.delete", method: http.MethodDelete, path: eventPath(id), token: token}, nil)
}

func eventPath(id int) string { return "/events/" + strconv.Itoa(id) }
