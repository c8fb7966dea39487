package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/uni-magazine/portal/internal/domain/access"
	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
)

// userScreen is one of the four role-scoped user management screens.
type userScreen struct {
	Role     domainauth.Role
	BasePath string
	Plural   string
	Singular string
}

//nolint:gochecknoglobals // static route table
var userScreens = []userScreen{
	{Role: domainauth.RoleStudent, BasePath: "/students", Plural: "Students", Singular: "Student"},
	{Role: domainauth.RoleMarketingCoordinator, BasePath: "/coordinators", Plural: "Coordinators", Singular: "Coordinator"},
	{Role: domainauth.RoleManager, BasePath: "/managers", Plural: "Managers", Singular: "Manager"},
	{Role: domainauth.RoleGuest, BasePath: "/guests", Plural: "Guests", Singular: "Guest"},
}

type createUserForm struct {
	UserName  string `form:"user_name" validate:"notblank,max=50"`
	FirstName string `form:"first_name" validate:"notblank,max=50"`
	LastName  string `form:"last_name" validate:"notblank,max=50"`
	Email     string `form:"email" validate:"required,email,max=100"`
	Phone     string `form:"phone" validate:"omitempty,max=20"`
	Password  string `form:"password" validate:"required,min=8,max=128"`
	FacultyID int    `form:"faculty_id"`
}

type updateUserForm struct {
	FirstName string `form:"first_name" validate:"notblank,max=50"`
	LastName  string `form:"last_name" validate:"notblank,max=50"`
	Email     string `form:"email" validate:"required,email,max=100"`
	Phone     string `form:"phone" validate:"omitempty,max=20"`
	Status    string `form:"status" validate:"omitempty,oneof=active inactive"`
}

type assignFacultyForm struct {
	FacultyID int `form:"faculty_id" validate:"required"`
}

func (s userScreen) listMeta() PageMeta {
	return PageMeta{Title: s.Plural, PageTitle: s.Plural, CurrentPage: PageUsers}
}

func (s userScreen) formMeta(mode FormMode) PageMeta {
	title := "New " + strings.ToLower(s.Singular)
	if mode == FormModeEdit {
		title = "Edit " + strings.ToLower(s.Singular)
	}
	return PageMeta{Title: title, PageTitle: title, CurrentPage: PageUserForm}
}

func (s userScreen) userURL(id int) string { return s.BasePath + "/" + strconv.Itoa(id) }

// screenData is the template context shared by every user screen.
func (s userScreen) screenData(actor domainauth.Role) map[string]any {
	return map[string]any{
		"Screen":    s,
		"CanManage": access.CanManageUsers(actor, s.Role),
		"CanAssign": access.CanAssignFaculty(actor) && assignable(s.Role),
	}
}

// assignable reports whether accounts of role belong to a faculty.
func assignable(role domainauth.Role) bool {
	return role == domainauth.RoleStudent || role == domainauth.RoleGuest || role == domainauth.RoleMarketingCoordinator
}

// UserList lists the accounts of the screen's role. GET /students etc.
func (h *UIHandlers) UserList(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := RoleFromContext(r.Context())
		if !access.CanViewUsers(actor, s.Role) {
			h.Forbidden(w, r)
			return
		}
		HandleList(ListHandlerOpts[model.User, struct{}]{
			Handler: h, W: w, R: r,
			Fetcher: func(ctx context.Context) ([]model.User, error) {
				return h.Users.ListByRole(ctx, session(r), s.Role.Name())
			},
			EnrichData: func(b *TemplateDataBuilder, _ []model.User, _ struct{}) {
				for k, v := range s.screenData(actor) {
					b.With(k, v)
				}
			},
			BasePath: s.BasePath,
			PageMeta: s.listMeta(),
			ItemsKey: "Users",
			Action:   "load " + strings.ToLower(s.Plural),
		})
	}
}

// UserView shows one account. GET /students/{id} etc.
func (h *UIHandlers) UserView(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := RoleFromContext(r.Context())
		if !access.CanViewUsers(actor, s.Role) {
			h.Forbidden(w, r)
			return
		}
		id, ok := pathID(r, "id")
		if !ok {
			h.NotFound(w, r)
			return
		}
		h.Page(w, r, PageSpec{
			Meta:   PageMeta{Title: s.Singular, PageTitle: s.Singular, CurrentPage: PageUserView},
			Action: "load " + strings.ToLower(s.Singular),
			Fetch: func(ctx context.Context, data map[string]any) error {
				u, err := h.Users.Get(ctx, session(r), id)
				if err != nil {
					return err
				}
				data["UserRecord"] = u
				for k, v := range s.screenData(actor) {
					data[k] = v
				}
				return nil
			},
		})
	}
}

// UserNew renders the create form. GET /students/new etc.
func (h *UIHandlers) UserNew(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !access.CanManageUsers(RoleFromContext(r.Context()), s.Role) {
			h.Forbidden(w, r)
			return
		}
		data := s.screenData(RoleFromContext(r.Context()))
		data["FormData"] = createUserForm{}
		data["Mode"] = FormModeCreate
		h.withFacultyOptions(r, s, data)
		data, _ = prepareFormFrame(FormFrameOpts{R: r, Data: data, DefaultMode: FormModeCreate, MetaForMode: s.formMeta})
		h.renderDashboardPage(w, r, data)
	}
}

// UserCreate creates an account with the screen's role. POST /students etc.
func (h *UIHandlers) UserCreate(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := RoleFromContext(r.Context())
		if !access.CanManageUsers(actor, s.Role) {
			h.Forbidden(w, r)
			return
		}
		extra := s.screenData(actor)
		h.withFacultyOptions(r, s, extra)
		HandleForm(FormHandlerOpts[createUserForm]{
			Handler: h, W: w, R: r, Mode: FormModeCreate,
			Parser: func(r *http.Request) (createUserForm, map[string]string) {
				return parseAndValidate(r, func(f postedForm) createUserForm {
					return createUserForm{
						UserName:  f.Get("user_name"),
						FirstName: f.Get("first_name"),
						LastName:  f.Get("last_name"),
						Email:     f.Get("email"),
						Phone:     f.Get("phone"),
						Password:  f.Raw("password"),
						FacultyID: formInt(f.Get("faculty_id")),
					}
				})
			},
			Submit: func(ctx context.Context, f createUserForm) error {
				req := model.CreateUserRequest{
					UserName:  f.UserName,
					FirstName: f.FirstName,
					LastName:  f.LastName,
					Email:     f.Email,
					Phone:     f.Phone,
					Password:  f.Password,
					RoleID:    s.Role,
				}
				if f.FacultyID > 0 && assignable(s.Role) {
					req.FacultyID = &f.FacultyID
				}
				_, err := h.Users.Create(ctx, session(r), req)
				return err
			},
			Renderer:       h.renderForm,
			SuccessURL:     s.BasePath,
			SuccessMessage: s.Singular + " created.",
			Action:         "create " + strings.ToLower(s.Singular),
			PageMeta:       s.formMeta(FormModeCreate),
			ExtraData:      extra,
		})
	}
}

// UserEdit renders the edit form prefilled from the API. GET /students/{id}/edit etc.
func (h *UIHandlers) UserEdit(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := RoleFromContext(r.Context())
		if !access.CanManageUsers(actor, s.Role) {
			h.Forbidden(w, r)
			return
		}
		id, ok := pathID(r, "id")
		if !ok {
			h.NotFound(w, r)
			return
		}
		h.Page(w, r, PageSpec{
			Meta:   s.formMeta(FormModeEdit),
			Action: "load " + strings.ToLower(s.Singular),
			Fetch: func(ctx context.Context, data map[string]any) error {
				u, err := h.Users.Get(ctx, session(r), id)
				if err != nil {
					return err
				}
				data["UserRecord"] = u
				data["FormData"] = updateUserForm{
					FirstName: u.FirstName,
					LastName:  u.LastName,
					Email:     u.Email,
					Phone:     u.Phone,
					Status:    string(u.Status),
				}
				data["Mode"] = FormModeEdit
				data["Errors"] = map[string]string{}
				for k, v := range s.screenData(actor) {
					data[k] = v
				}
				return nil
			},
		})
	}
}

// UserUpdate saves the edit form. POST /students/{id}/edit etc.
func (h *UIHandlers) UserUpdate(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := RoleFromContext(r.Context())
		if !access.CanManageUsers(actor, s.Role) {
			h.Forbidden(w, r)
			return
		}
		id, ok := pathID(r, "id")
		if !ok {
			h.NotFound(w, r)
			return
		}
		extra := s.screenData(actor)
		extra["UserRecord"] = model.User{ID: id}
		HandleForm(FormHandlerOpts[updateUserForm]{
			Handler: h, W: w, R: r, Mode: FormModeEdit,
			Parser: func(r *http.Request) (updateUserForm, map[string]string) {
				return parseAndValidate(r, func(f postedForm) updateUserForm {
					return updateUserForm{
						FirstName: f.Get("first_name"),
						LastName:  f.Get("last_name"),
						Email:     f.Get("email"),
						Phone:     f.Get("phone"),
						Status:    f.Get("status"),
					}
				})
			},
			Submit: func(ctx context.Context, f updateUserForm) error {
				_, err := h.Users.Update(ctx, session(r), id, model.UpdateUserRequest{
					FirstName: f.FirstName,
					LastName:  f.LastName,
					Email:     f.Email,
					Phone:     f.Phone,
					Status:    domainauth.UserStatus(f.Status),
				})
				return err
			},
			Renderer:       h.renderForm,
			SuccessURL:     s.userURL(id),
			SuccessMessage: s.Singular + " updated.",
			Action:         "update " + strings.ToLower(s.Singular),
			PageMeta:       s.formMeta(FormModeEdit),
			ExtraData:      extra,
		})
	}
}

// UserDelete removes an account. POST /students/{id}/delete etc.
func (h *UIHandlers) UserDelete(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !access.CanManageUsers(RoleFromContext(r.Context()), s.Role) {
			h.Forbidden(w, r)
			return
		}
		id, ok := pathID(r, "id")
		if !ok {
			h.NotFound(w, r)
			return
		}
		if err := h.Users.Delete(r.Context(), session(r), id); err != nil {
			h.failAction(w, r, err, "delete "+strings.ToLower(s.Singular), s.userURL(id))
			return
		}
		h.succeed(w, r, s.Singular+" deleted.", s.BasePath)
	}
}

func (s userScreen) facultyMeta() PageMeta {
	return PageMeta{Title: "Assign faculty", PageTitle: "Assign faculty", CurrentPage: PageUserFaculty}
}

// UserFacultyForm renders the faculty assignment form. GET /students/{id}/faculty etc.
func (h *UIHandlers) UserFacultyForm(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := RoleFromContext(r.Context())
		if !access.CanAssignFaculty(actor) || !assignable(s.Role) {
			h.Forbidden(w, r)
			return
		}
		id, ok := pathID(r, "id")
		if !ok {
			h.NotFound(w, r)
			return
		}
		h.Page(w, r, PageSpec{
			Meta:   s.facultyMeta(),
			Action: "load faculties",
			Fetch: func(ctx context.Context, data map[string]any) error {
				u, err := h.Users.Get(ctx, session(r), id)
				if err != nil {
					return err
				}
				faculties, err := h.Faculties.List(ctx, session(r))
				if err != nil {
					return err
				}
				form := assignFacultyForm{}
				if u.Faculty != nil {
					form.FacultyID = u.Faculty.ID
				}
				data["UserRecord"] = u
				data["Faculties"] = faculties
				data["FormData"] = form
				data["Errors"] = map[string]string{}
				for k, v := range s.screenData(actor) {
					data[k] = v
				}
				return nil
			},
		})
	}
}

// UserAssignFaculty moves the account into a faculty. POST /students/{id}/faculty etc.
func (h *UIHandlers) UserAssignFaculty(s userScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := RoleFromContext(r.Context())
		if !access.CanAssignFaculty(actor) || !assignable(s.Role) {
			h.Forbidden(w, r)
			return
		}
		id, ok := pathID(r, "id")
		if !ok {
			h.NotFound(w, r)
			return
		}
		extra := s.screenData(actor)
		extra["UserRecord"] = model.User{ID: id}
		if faculties, err := h.Faculties.List(r.Context(), session(r)); err == nil {
			extra["Faculties"] = faculties
		}
		HandleForm(FormHandlerOpts[assignFacultyForm]{
			Handler: h, W: w, R: r, Mode: FormModeEdit,
			Parser: func(r *http.Request) (assignFacultyForm, map[string]string) {
				return parseAndValidate(r, func(f postedForm) assignFacultyForm {
					return assignFacultyForm{FacultyID: formInt(f.Get("faculty_id"))}
				})
			},
			Submit: func(ctx context.Context, f assignFacultyForm) error {
				return h.Users.AssignFaculty(ctx, session(r), id, f.FacultyID)
			},
			Renderer:       h.renderForm,
			SuccessURL:     s.userURL(id),
			SuccessMessage: "Faculty assigned.",
			Action:         "assign faculty",
			PageMeta:       s.facultyMeta(),
			ExtraData:      extra,
		})
	}
}

// withFacultyOptions adds the faculty picker when the role belongs to a faculty.
func (h *UIHandlers) withFacultyOptions(r *http.Request, s userScreen, data map[string]any) {
	if assignable(s.Role) {
		h.withFaculties(r, data)
	}
}
