package service

import (
	"context"
	"fmt"
	"strconv"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	"github.com/uni-magazine/portal/internal/ports"
)

// FacultyServiceOptions groups dependencies for FacultyService.
type FacultyServiceOptions struct {
	API   ports.FacultyAPI
	Cache *QueryCache
}

// FacultyService manages faculties.
type FacultyService struct {
	api   ports.FacultyAPI
	cache *QueryCache
}

// NewFacultyService constructs a new FacultyService.
func NewFacultyService(opts FacultyServiceOptions) *FacultyService {
	if opts.API == nil {
		panic("FacultyAPI is required")
	}
	return &FacultyService{api: opts.API, cache: opts.Cache}
}

// List returns all faculties.
func (s *FacultyService) List(ctx context.Context, sess domainauth.Session) ([]model.Faculty, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	q := cacheQuery{entity: entityFaculties, scope: sessionScope(sess)}
	out, err := readThrough(ctx, s.cache, q, func(ctx context.Context) ([]model.Faculty, error) {
		return s.api.ListFaculties(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	return out, nil
}

// Get returns one faculty.
func (s *FacultyService) Get(ctx context.Context, sess domainauth.Session, id int) (model.Faculty, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Faculty{}, err
	}
	q := cacheQuery{entity: entityFaculties, scope: sessionScope(sess), filter: "id=" + strconv.Itoa(id)}
	out, err := readThrough(ctx, s.cache, q, func(ctx context.Context) (model.Faculty, error) {
		return s.api.GetFaculty(ctx, token, id)
	})
	if err != nil {
		return model.Faculty{}, fmt.Errorf("get faculty %d: %w", id, err)
	}
	return out, nil
}

// Create adds a faculty.
func (s *FacultyService) Create(ctx context.Context, sess domainauth.Session, req model.FacultyRequest) (model.Faculty, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Faculty{}, err
	}
	out, err := s.api.CreateFaculty(ctx, token, req)
	if err != nil {
		return model.Faculty{}, fmt.Errorf("create faculty: %w", err)
	}
	s.cache.Invalidate(ctx, entityFaculties)
	return out, nil
}

// Update renames or redescribes a faculty. Users embed the faculty name, so they are bumped too.
func (s *FacultyService) Update(
	ctx context.Context,
	sess domainauth.Session,
	id int,
	req model.FacultyRequest,
) (model.Faculty, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return model.Faculty{}, err
	}
	out, err := s.api.UpdateFaculty(ctx, token, id, req)
	if err != nil {
		return model.Faculty{}, fmt.Errorf("update faculty %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, entityFaculties, entityUsers)
	return out, nil
}
