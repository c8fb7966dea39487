package httpx

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/uni-magazine/portal/internal/domain/access"
	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
)

type eventForm struct {
	Name             string    `form:"name" validate:"notblank,max=100"`
	Description      string    `form:"description" validate:"max=1000"`
	FacultyID        int       `form:"faculty_id"`
	FirstClosureDate time.Time `form:"first_closure_date" validate:"required"`
	FinalClosureDate time.Time `form:"final_closure_date" validate:"required,gtfield=FirstClosureDate"`
}

func (f eventForm) request() model.EventRequest {
	req := model.EventRequest{
		Name:             f.Name,
		Description:      f.Description,
		FirstClosureDate: model.NewTimestamp(f.FirstClosureDate),
		FinalClosureDate: model.NewTimestamp(f.FinalClosureDate),
	}
	if f.FacultyID > 0 {
		id := f.FacultyID
		req.FacultyID = &id
	}
	return req
}

// eventFormValues is what the form template reads back; dates stay as typed input strings.
type eventFormValues struct {
	Name             string
	Description      string
	FacultyID        int
	FirstClosureDate string
	FinalClosureDate string
}

func (f eventForm) values() eventFormValues {
	return eventFormValues{
		Name:             f.Name,
		Description:      f.Description,
		FacultyID:        f.FacultyID,
		FirstClosureDate: dateInput(f.FirstClosureDate),
		FinalClosureDate: dateInput(f.FinalClosureDate),
	}
}

func dateInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func eventFormMeta(mode FormMode) PageMeta {
	if mode == FormModeEdit {
		return PageMeta{Title: "Edit magazine", PageTitle: "Edit magazine", CurrentPage: PageEventForm}
	}
	return PageMeta{Title: "New magazine", PageTitle: "New magazine", CurrentPage: PageEventForm}
}

func parseEventForm(r *http.Request) (eventForm, map[string]string) {
	return parseAndValidate(r, func(f postedForm) eventForm {
		return eventForm{
			Name:             f.Get("name"),
			Description:      f.Get("description"),
			FacultyID:        formInt(f.Get("faculty_id")),
			FirstClosureDate: formDate(f.Get("first_closure_date")),
			FinalClosureDate: formDate(f.Get("final_closure_date")),
		}
	})
}

// eventRow decorates an event with what the current user may do with it.
type eventRow struct {
	model.Event
	CanSubmit bool
	CanManage bool
}

func eventRows(events []model.Event, role domainauth.Role, now time.Time) []eventRow {
	rows := make([]eventRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, eventRow{
			Event:     ev,
			CanSubmit: access.CanSubmitContribution(role, ev, now),
			CanManage: access.CanManageEvents(role),
		})
	}
	return rows
}

// EventList lists magazines, newest closure first. Students see only open ones. GET /events.
func (h *UIHandlers) EventList(w http.ResponseWriter, r *http.Request) {
	role := RoleFromContext(r.Context())
	HandleList(ListHandlerOpts[model.Event, struct{}]{
		Handler: h, W: w, R: r,
		Fetcher: func(ctx context.Context) ([]model.Event, error) {
			var (
				events []model.Event
				err    error
			)
			if role == domainauth.RoleStudent {
				events, err = h.Events.ListOpen(ctx, session(r), h.now())
			} else {
				events, err = h.Events.List(ctx, session(r))
			}
			if err != nil {
				return nil, err
			}
			sort.SliceStable(events, func(i, j int) bool {
				return events[i].FinalClosureDate.After(events[j].FinalClosureDate.Time)
			})
			return events, nil
		},
		EnrichData: func(b *TemplateDataBuilder, page []model.Event, _ struct{}) {
			b.With("Rows", eventRows(page, role, h.now())).
				With("CanManage", access.CanManageEvents(role))
		},
		BasePath: "/events",
		PageMeta: PageMeta{Title: "Magazines", PageTitle: eventsTitle(role), CurrentPage: PageEvents},
		ItemsKey: "Events",
		Action:   "load magazines",
	})
}

func eventsTitle(role domainauth.Role) string {
	if role == domainauth.RoleStudent {
		return "New Magazines"
	}
	return "Manage Magazines"
}

// EventView shows one magazine with its contributions. GET /events/{id}.
func (h *UIHandlers) EventView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	sess := session(r)
	h.Page(w, r, PageSpec{
		Meta:   PageMeta{Title: "Magazine", PageTitle: "Magazine", CurrentPage: PageEventView},
		Action: "load magazine",
		Fetch: func(ctx context.Context, data map[string]any) error {
			ev, err := h.Events.Get(ctx, sess, id)
			if err != nil {
				return err
			}
			now := h.now()
			data["Event"] = ev
			data["OpenForSubmission"] = ev.IsOpenForSubmission(now)
			data["OpenForEdit"] = ev.IsOpenForEdit(now)
			data["CanSubmit"] = access.CanSubmitContribution(sess.Role(), ev, now)
			data["CanManage"] = access.CanManageEvents(sess.Role())
			data["CanDownload"] = access.CanDownloadContributions(sess.Role())
			data["SubmitURL"] = "/contributions/new?event_id=" + strconv.Itoa(ev.ID)

			if !access.CanViewContributions(sess.Role()) {
				return nil
			}
			list, err := h.Contributions.List(ctx, sess, model.ContributionFilter{EventID: id})
			if err != nil {
				return err
			}
			data["Contributions"] = list
			return nil
		},
	})
}

// EventNew renders the create form. GET /events/new.
func (h *UIHandlers) EventNew(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageEvents(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	data := map[string]any{"FormData": eventFormValues{}}
	h.withFaculties(r, data)
	data, _ = prepareFormFrame(FormFrameOpts{R: r, Data: data, DefaultMode: FormModeCreate, MetaForMode: eventFormMeta})
	h.renderDashboardPage(w, r, data)
}

// EventCreate handles POST /events.
func (h *UIHandlers) EventCreate(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageEvents(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	extra := map[string]any{}
	h.withFaculties(r, extra)
	h.submitEvent(w, r, FormModeCreate, extra, func(ctx context.Context, f eventForm) error {
		_, err := h.Events.Create(ctx, session(r), f.request())
		return err
	}, "/events", "Magazine created.", "create magazine")
}

// EventEdit renders the edit form. GET /events/{id}/edit.
func (h *UIHandlers) EventEdit(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageEvents(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.Page(w, r, PageSpec{
		Meta:   eventFormMeta(FormModeEdit),
		Action: "load magazine",
		Fetch: func(ctx context.Context, data map[string]any) error {
			ev, err := h.Events.Get(ctx, session(r), id)
			if err != nil {
				return err
			}
			values := eventFormValues{
				Name:             ev.Name,
				Description:      ev.Description,
				FirstClosureDate: ev.FirstClosureDate.DateInput(),
				FinalClosureDate: ev.FinalClosureDate.DateInput(),
			}
			if ev.FacultyID != nil {
				values.FacultyID = *ev.FacultyID
			}
			data["Event"] = ev
			data["FormData"] = values
			data["Mode"] = FormModeEdit
			data["Errors"] = map[string]string{}
			h.withFaculties(r, data)
			return nil
		},
	})
}

// EventUpdate handles POST /events/{id}/edit.
func (h *UIHandlers) EventUpdate(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageEvents(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	extra := map[string]any{"Event": model.Event{ID: id}}
	h.withFaculties(r, extra)
	h.submitEvent(w, r, FormModeEdit, extra, func(ctx context.Context, f eventForm) error {
		_, err := h.Events.Update(ctx, session(r), id, f.request())
		return err
	}, "/events/"+strconv.Itoa(id), "Magazine updated.", "update magazine")
}

// submitEvent runs the shared create/edit flow. The re-rendered form gets the typed date
// strings back instead of parsed times.
func (h *UIHandlers) submitEvent(
	w http.ResponseWriter,
	r *http.Request,
	mode FormMode,
	extra map[string]any,
	submit FormSubmitter[eventForm],
	successURL, successMsg, action string,
) {
	HandleForm(FormHandlerOpts[eventFormValues]{
		Handler: h, W: w, R: r, Mode: mode,
		Parser: func(r *http.Request) (eventFormValues, map[string]string) {
			f, errs := parseEventForm(r)
			values := f.values()
			if values.FirstClosureDate == "" {
				values.FirstClosureDate = r.PostFormValue("first_closure_date")
			}
			if values.FinalClosureDate == "" {
				values.FinalClosureDate = r.PostFormValue("final_closure_date")
			}
			return values, errs
		},
		Submit: func(ctx context.Context, v eventFormValues) error {
			return submit(ctx, eventForm{
				Name:             v.Name,
				Description:      v.Description,
				FacultyID:        v.FacultyID,
				FirstClosureDate: formDate(v.FirstClosureDate),
				FinalClosureDate: formDate(v.FinalClosureDate),
			})
		},
		Renderer:       h.renderForm,
		SuccessURL:     successURL,
		SuccessMessage: successMsg,
		Action:         action,
		PageMeta:       eventFormMeta(mode),
		ExtraData:      extra,
	})
}

// EventDelete handles POST /events/{id}/delete.
func (h *UIHandlers) EventDelete(w http.ResponseWriter, r *http.Request) {
	if !access.CanManageEvents(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := h.Events.Delete(r.Context(), session(r), id); err != nil {
		h.failAction(w, r, err, "delete magazine", "/events/"+strconv.Itoa(id))
		return
	}
	h.succeed(w, r, "Magazine deleted.", "/events")
}

// withFaculties adds the faculty picker. A failed lookup leaves it empty.
func (h *UIHandlers) withFaculties(r *http.Request, data map[string]any) {
	faculties, err := h.Faculties.List(r.Context(), session(r))
	if err != nil {
		h.logger().WarnContext(r.Context(), "faculty options unavailable", "error", err)
		return
	}
	data["Faculties"] = faculties
}
