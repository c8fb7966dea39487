package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	"github.com/uni-magazine/portal/internal/ports"
)

// EventServiceOptions groups dependencies for EventService.
type EventServiceOptions struct {
	API   ports.EventAPI
	Cache *QueryCache
}

// EventService manages magazine events.
type EventService struct {
	api   ports.EventAPI
	cache *QueryCache
}

// NewEventService constructs a new EventService.
func NewEventService(opts EventServiceOptions) *EventService {
	if opts.API == nil {
		panic("EventAPI is required")
	}
	return &EventService{api: opts.API, cache: opts.Cache}
}

// List returns every event visible to the caller.
func (s *EventService) List(ctx context.Context, sess domainauth.Session) ([]model.Event, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	q := cacheQuery{entity: entityEvents, scope: sessionScope(sess)}
	out, err := readThrough(ctx, s.cache, q, func(ctx context.Context) ([]model.Event, error) {
		return s.api.ListEvents(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

// ListOpen returns the events still accepting new submissions at now.
func (s *EventService) ListOpen(ctx context.Context, sess domainauth.Session, now time.Time) ([]model.Event, error) {
	all, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	open := make([]model.Event, 0, len(all))
	for _, ev := range all {
		if ev.IsOpenForSubmission(now) {
			open = append(open, ev)
		}
	}
	return open, nil
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, sess domainauth.Session, id int) (model.Event, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Event{}, err
	}
	q := cacheQuery{entity: entityEvents, scope: sessionScope(sess), filter: "id=" + strconv.Itoa(id)}
	out, err := readThrough(ctx, s.cache, q, func(ctx context.Context) (model.Event, error) {
		return s.api.GetEvent(ctx, token, id)
	})
	if err != nil {
		return model.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return out, nil
}

// Create adds an event.
func (s *EventService) Create(ctx context.Context, sess domainauth.Session, req model.EventRequest) (model.Event, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Event{}, err
	}
	out, err := s.api.CreateEvent(ctx, token, req)
	if err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	s.cache.Invalidate(ctx, entityEvents)
	return out, nil
}

// Update changes an event.
func (s *EventService) Update(ctx context.Context, sess domainauth.Session, id int, req model.EventRequest) (model.Event, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Event{}, err
	}
	out, err := s.api.UpdateEvent(ctx, token, id, req)
	if err != nil {
		return model.Event{}, fmt.Errorf("update event %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, entityEvents)
	return out, nil
}

// Delete removes an event and, on the API side, its contributions.
func (s *EventService) Delete(ctx context.Context, sess domainauth.Session, id int) error {
	token, err := bearerToken(sess)
	if err != nil {
		return err
	}
	if err := s.api.DeleteEvent(ctx, token, id); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, entityEvents, entityContributions)
	return nil
}
