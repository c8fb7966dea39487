package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	apperrors "github.com/uni-magazine/portal/internal/errors"
	"github.com/uni-magazine/portal/internal/service"
	"github.com/uni-magazine/portal/internal/testutil"
)

//nolint:gochecknoglobals // shared test sentinel
var errNotFoundForTest = apperrors.NotFound("Not found.")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAuth is a function-field double for AuthService.
type fakeAuth struct {
	loginFn      func(ctx context.Context, creds model.Credentials) (*service.LoginResult, error)
	getSessionFn func(ctx context.Context, token string) (*domainauth.Session, error)
	logoutFn     func(ctx context.Context, token string) error
	loggedOut    []string
}

func (f *fakeAuth) Login(ctx context.Context, creds model.Credentials) (*service.LoginResult, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, creds)
	}
	return nil, nil
}

func (f *fakeAuth) GetSession(ctx context.Context, token string) (*domainauth.Session, error) {
	if f.getSessionFn != nil {
		return f.getSessionFn(ctx, token)
	}
	return nil, nil
}

func (f *fakeAuth) Logout(ctx context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	if f.logoutFn != nil {
		return f.logoutFn(ctx, token)
	}
	return nil
}

// fakeAccounts records the public account calls.
type fakeAccounts struct {
	registerFn func(ctx context.Context, req model.RegisterRequest) (model.RegisterResult, error)
	verifyErr  error
	resendErr  error
	forgotErr  error
	resetErr   error

	verified   []string
	resent     []int
	forgotFor  []string
	resetToken string
}

func (f *fakeAccounts) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResult, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, req)
	}
	return model.RegisterResult{}, nil
}

func (f *fakeAccounts) VerifyOTP(_ context.Context, _ int, otp string) error {
	f.verified = append(f.verified, otp)
	return f.verifyErr
}

func (f *fakeAccounts) ResendVerification(_ context.Context, userID int) error {
	f.resent = append(f.resent, userID)
	return f.resendErr
}

func (f *fakeAccounts) ForgotPassword(_ context.Context, email string) error {
	f.forgotFor = append(f.forgotFor, email)
	return f.forgotErr
}

func (f *fakeAccounts) ResetPassword(_ context.Context, token, _ string) error {
	f.resetToken = token
	return f.resetErr
}

// fakeUsers serves a fixed user list.
type fakeUsers struct {
	users     []model.User
	err       error
	created   []model.CreateUserRequest
	updated   map[int]model.UpdateUserRequest
	deleted   []int
	assigned  map[int]int
	listRoles []string
}

func (f *fakeUsers) ListByRole(_ context.Context, _ domainauth.Session, role string) ([]model.User, error) {
	f.listRoles = append(f.listRoles, role)
	return f.users, f.err
}

func (f *fakeUsers) Get(_ context.Context, _ domainauth.Session, id int) (model.User, error) {
	if f.err != nil {
		return model.User{}, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, errNotFoundForTest
}

func (f *fakeUsers) Create(_ context.Context, _ domainauth.Session, req model.CreateUserRequest) (model.User, error) {
	f.created = append(f.created, req)
	return model.User{ID: 100}, f.err
}

func (f *fakeUsers) Update(
	_ context.Context,
	_ domainauth.Session,
	id int,
	req model.UpdateUserRequest,
) (model.User, error) {
	if f.updated == nil {
		f.updated = map[int]model.UpdateUserRequest{}
	}
	f.updated[id] = req
	return model.User{ID: id}, f.err
}

func (f *fakeUsers) Delete(_ context.Context, _ domainauth.Session, id int) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeUsers) AssignFaculty(_ context.Context, _ domainauth.Session, userID, facultyID int) error {
	if f.assigned == nil {
		f.assigned = map[int]int{}
	}
	f.assigned[userID] = facultyID
	return f.err
}

// fakeFaculties serves a fixed faculty list.
type fakeFaculties struct {
	faculties []model.Faculty
	err       error
	created   []model.FacultyRequest
	updated   map[int]model.FacultyRequest
}

func (f *fakeFaculties) List(context.Context, domainauth.Session) ([]model.Faculty, error) {
	return f.faculties, f.err
}

func (f *fakeFaculties) Get(_ context.Context, _ domainauth.Session, id int) (model.Faculty, error) {
	for _, fac := range f.faculties {
		if fac.ID == id {
			return fac, f.err
		}
	}
	return model.Faculty{}, errNotFoundForTest
}

func (f *fakeFaculties) Create(_ context.Context, _ domainauth.Session, req model.FacultyRequest) (model.Faculty, error) {
	f.created = append(f.created, req)
	return model.Faculty{ID: 1, Name: req.Name}, f.err
}

func (f *fakeFaculties) Update(
	_ context.Context,
	_ domainauth.Session,
	id int,
	req model.FacultyRequest,
) (model.Faculty, error) {
	if f.updated == nil {
		f.updated = map[int]model.FacultyRequest{}
	}
	f.updated[id] = req
	return model.Faculty{ID: id, Name: req.Name}, f.err
}

// fakeEvents serves a fixed event list. ListOpen filters by closure dates like the real service.
type fakeEvents struct {
	events  []model.Event
	err     error
	created []model.EventRequest
	updated map[int]model.EventRequest
	deleted []int
}

func (f *fakeEvents) List(context.Context, domainauth.Session) ([]model.Event, error) {
	return f.events, f.err
}

func (f *fakeEvents) ListOpen(_ context.Context, _ domainauth.Session, now time.Time) ([]model.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var open []model.Event
	for _, ev := range f.events {
		if ev.IsOpenForSubmission(now) {
			open = append(open, ev)
		}
	}
	return open, nil
}

func (f *fakeEvents) Get(_ context.Context, _ domainauth.Session, id int) (model.Event, error) {
	if f.err != nil {
		return model.Event{}, f.err
	}
	for _, ev := range f.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return model.Event{}, errNotFoundForTest
}

func (f *fakeEvents) Create(_ context.Context, _ domainauth.Session, req model.EventRequest) (model.Event, error) {
	f.created = append(f.created, req)
	return model.Event{ID: 50, Name: req.Name}, f.err
}

func (f *fakeEvents) Update(_ context.Context, _ domainauth.Session, id int, req model.EventRequest) (model.Event, error) {
	if f.updated == nil {
		f.updated = map[int]model.EventRequest{}
	}
	f.updated[id] = req
	return model.Event{ID: id, Name: req.Name}, f.err
}

func (f *fakeEvents) Delete(_ context.Context, _ domainauth.Session, id int) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

// fakeContributions serves a fixed contribution list.
type fakeContributions struct {
	contributions []model.Contribution
	comments      []model.Comment
	err           error

	filters  []model.ContributionFilter
	created  []model.ContributionRequest
	updated  map[int]model.ContributionRequest
	reviewed map[int]model.ContributionStatus
	added    []string
}

func (f *fakeContributions) List(
	_ context.Context,
	_ domainauth.Session,
	filter model.ContributionFilter,
) ([]model.Contribution, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Contribution
	for _, c := range f.contributions {
		if filter.EventID != 0 && c.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeContributions) Get(_ context.Context, _ domainauth.Session, id int) (model.Contribution, error) {
	if f.err != nil {
		return model.Contribution{}, f.err
	}
	for _, c := range f.contributions {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Contribution{}, errNotFoundForTest
}

func (f *fakeContributions) Create(
	_ context.Context,
	_ domainauth.Session,
	req model.ContributionRequest,
) (model.Contribution, error) {
	f.created = append(f.created, req)
	return model.Contribution{ID: 77, Title: req.Title, EventID: req.EventID}, f.err
}

func (f *fakeContributions) Update(
	_ context.Context,
	_ domainauth.Session,
	id int,
	req model.ContributionRequest,
) (model.Contribution, error) {
	if f.updated == nil {
		f.updated = map[int]model.ContributionRequest{}
	}
	f.updated[id] = req
	return model.Contribution{ID: id}, f.err
}

func (f *fakeContributions) Review(
	_ context.Context,
	_ domainauth.Session,
	id int,
	status model.ContributionStatus,
) (model.Contribution, error) {
	if f.reviewed == nil {
		f.reviewed = map[int]model.ContributionStatus{}
	}
	f.reviewed[id] = status
	return model.Contribution{ID: id, Status: status}, f.err
}

func (f *fakeContributions) ListComments(context.Context, domainauth.Session, int) ([]model.Comment, error) {
	return f.comments, nil
}

func (f *fakeContributions) AddComment(
	_ context.Context,
	_ domainauth.Session,
	contributionID int,
	content string,
) (model.Comment, error) {
	f.added = append(f.added, content)
	return model.Comment{ID: 1, ContributionID: contributionID, Content: content}, f.err
}

// uiFixture bundles UI handlers with their fakes.
type uiFixture struct {
	h             *UIHandlers
	auth          *fakeAuth
	accounts      *fakeAccounts
	users         *fakeUsers
	faculties     *fakeFaculties
	events        *fakeEvents
	contributions *fakeContributions
}

func newUIFixture(t *testing.T) *uiFixture {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	f := &uiFixture{
		auth:          &fakeAuth{},
		accounts:      &fakeAccounts{},
		users:         &fakeUsers{},
		faculties:     &fakeFaculties{},
		events:        &fakeEvents{},
		contributions: &fakeContributions{},
	}
	f.h = &UIHandlers{
		T:             tr,
		Auth:          f.auth,
		Accounts:      f.accounts,
		Users:         f.users,
		Faculties:     f.faculties,
		Events:        f.events,
		Contributions: f.contributions,
		Logger:        discardLogger(),
		Now:           testutil.TestTime,
	}
	return f
}

// serve routes req through the real mux so path values are populated.
func (f *uiFixture) serve(req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	registerUIRoutes(mux, f.h, func(h http.Handler) http.Handler { return h })
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

// asRole attaches a session for role to req.
func asRole(req *http.Request, role domainauth.Role, userID int) *http.Request {
	sess := testutil.SessionFor(role, userID)
	return req.WithContext(SetSessionInContext(req.Context(), &sess))
}
