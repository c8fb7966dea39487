package httpx

import (
	"context"
	"net/http"

	"github.com/uni-magazine/portal/internal/domain/access"
	"github.com/uni-magazine/portal/internal/domain/model"
)

type facultyForm struct {
	Name        string `form:"name" validate:"notblank,max=100"`
	Description string `form:"description" validate:"max=500"`
}

func facultyFormMeta(mode FormMode) PageMeta {
	if mode == FormModeEdit {
		return PageMeta{Title: "Edit faculty", PageTitle: "Edit faculty", CurrentPage: PageFacultyForm}
	}
	return PageMeta{Title: "New faculty", PageTitle: "New faculty", CurrentPage: PageFacultyForm}
}

func parseFacultyForm(r *http.Request) (facultyForm, map[string]string) {
	return parseAndValidate(r, func(f postedForm) facultyForm {
		return facultyForm{Name: f.Get("name"), Description: f.Get("description")}
	})
}

func (f facultyForm) request() model.FacultyRequest {
	return model.FacultyRequest{Name: f.Name, Description: f.Description}
}

// FacultyList lists faculties. GET /faculties.
func (h *UIHandlers) FacultyList(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Faculty, struct{}]{
		Handler: h, W: w, R: r,
		Fetcher: func(ctx context.Context) ([]model.Faculty, error) {
			return h.Faculties.List(ctx, session(r))
		},
		EnrichData: func(b *TemplateDataBuilder, _ []model.Faculty, _ struct{}) {
			b.With("CanManage", access.CanManageFaculty(RoleFromContext(r.Context())))
		},
		BasePath: "/faculties",
		PageMeta: PageMeta{Title: "Faculties", PageTitle: "Faculty Management", CurrentPage: PageFaculties},
		ItemsKey: "Faculties",
		Action:   "load faculties",
	})
}

// FacultyNew renders the create form. GET /faculties/new.
func (h *UIHandlers) FacultyNew(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageFaculty(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	data, _ := prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        map[string]any{"FormData": facultyForm{}},
		DefaultMode: FormModeCreate,
		MetaForMode: facultyFormMeta,
	})
	h.renderDashboardPage(w, r, data)
}

// FacultyCreate handles POST /faculties.
func (h *UIHandlers) FacultyCreate(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageFaculty(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	HandleForm(FormHandlerOpts[facultyForm]{
		Handler: h, W: w, R: r, Mode: FormModeCreate,
		Parser: parseFacultyForm,
		Submit: func(ctx context.Context, f facultyForm) error {
			_, err := h.Faculties.Create(ctx, session(r), f.request())
			return err
		},
		Renderer:       h.renderForm,
		SuccessURL:     "/faculties",
		SuccessMessage: "Faculty created.",
		Action:         "create faculty",
		PageMeta:       facultyFormMeta(FormModeCreate),
	})
}

// FacultyEdit renders the edit form. GET /faculties/{id}/edit.
func (h *UIHandlers) FacultyEdit(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageFaculty(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.Page(w, r, PageSpec{
		Meta:   facultyFormMeta(FormModeEdit),
		Action: "load faculty",
		Fetch: func(ctx context.Context, data map[string]any) error {
			f, err := h.Faculties.Get(ctx, session(r), id)
			if err != nil {
				return err
			}
			data["Faculty"] = f
			data["FormData"] = facultyForm{Name: f.Name, Description: f.Description}
			data["Mode"] = FormModeEdit
			data["Errors"] = map[string]string{}
			return nil
		},
	})
}

// FacultyUpdate handles POST /faculties/{id}/edit.
func (h *UIHandlers) FacultyUpdate(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageFaculty(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	HandleForm(FormHandlerOpts[facultyForm]{
		Handler: h, W: w, R: r, Mode: FormModeEdit,
		Parser: parseFacultyForm,
		Submit: func(ctx context.Context, f facultyForm) error {
			_, err := h.Faculties.Update(ctx, session(r), id, f.request())
			return err
		},
		Renderer:       h.renderForm,
		SuccessURL:     "/faculties",
		SuccessMessage: "Faculty updated.",
		Action:         "update faculty",
		PageMeta:       facultyFormMeta(FormModeEdit),
		ExtraData:      map[string]any{"Faculty": model.Faculty{ID: id}},
	})
}
