package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/uni-magazine/portal/internal/domain/access"
	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	apperrors "github.com/uni-magazine/portal/internal/errors"
)

type contributionForm struct {
	Title       string `form:"title" validate:"notblank,max=200"`
	Description string `form:"description" validate:"max=2000"`
	EventID     int    `form:"event_id" validate:"required"`
}

type commentForm struct {
	Content string `form:"content" validate:"notblank,max=1000"`
}

// contributionFilters is the parsed list query.
type contributionFilters struct {
	EventID int
	Status  string
}

func (f contributionFilters) model() model.ContributionFilter {
	return model.ContributionFilter{EventID: f.EventID, Status: model.ContributionStatus(f.Status)}
}

func parseContributionFilters(q url.Values) (contributionFilters, error) {
	var f contributionFilters
	if v := q.Get("event_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return f, errors.New("event_id must be a positive number")
		}
		f.EventID = id
	}
	if v := q.Get("status"); v != "" {
		s, ok := model.ParseContributionStatus(v)
		if !ok {
			return f, errors.New("status must be pending, accepted or rejected")
		}
		f.Status = string(s)
	}
	return f, nil
}

func contributionURL(id int) string { return "/contributions/" + strconv.Itoa(id) }

func contributionFormMeta(mode FormMode) PageMeta {
	if mode == FormModeEdit {
		return PageMeta{Title: "Edit contribution", PageTitle: "Edit contribution", CurrentPage: PageContributionForm}
	}
	return PageMeta{Title: "Submit contribution", PageTitle: "Submit contribution", CurrentPage: PageContributionForm}
}

func contributionsTitle(role domainauth.Role) string {
	if role == domainauth.RoleStudent {
		return "My Contributions"
	}
	return "Contributions"
}

// ContributionList lists contributions, newest first. GET /contributions?event_id=&status=.
func (h *UIHandlers) ContributionList(w http.ResponseWriter, r *http.Request) {
	role := RoleFromContext(r.Context())
	if !access.CanViewContributions(role) {
		h.Forbidden(w, r)
		return
	}
	HandleList(ListHandlerOpts[model.Contribution, contributionFilters]{
		Handler: h, W: w, R: r,
		FilteredFetcher: func(ctx context.Context, f contributionFilters) ([]model.Contribution, error) {
			list, err := h.Contributions.List(ctx, session(r), f.model())
			if err != nil {
				return nil, err
			}
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].SubmittedAt.After(list[j].SubmittedAt.Time)
			})
			return list, nil
		},
		FilterParser: parseContributionFilters,
		EnrichData: func(b *TemplateDataBuilder, _ []model.Contribution, _ contributionFilters) {
			b.With("Statuses", []model.ContributionStatus{
				model.ContributionPending, model.ContributionAccepted, model.ContributionRejected,
			}).
				With("CanReview", access.CanReview(role)).
				With("CanDownload", access.CanDownloadContributions(role))
			if events, err := h.Events.List(r.Context(), session(r)); err == nil {
				b.With("Events", events)
			}
		},
		BasePath: "/contributions",
		PageMeta: PageMeta{Title: "Contributions", PageTitle: contributionsTitle(role), CurrentPage: PageContributions},
		ItemsKey: "Contributions",
		Action:   "load contributions",
	})
}

// ContributionView shows a contribution with its comments and the actions the role allows.
// GET /contributions/{id}.
func (h *UIHandlers) ContributionView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	sess := session(r)
	h.Page(w, r, PageSpec{
		Meta:   PageMeta{Title: "Contribution", PageTitle: "Contribution", CurrentPage: PageContributionView},
		Action: "load contribution",
		Fetch: func(ctx context.Context, data map[string]any) error {
			c, err := h.Contributions.Get(ctx, sess, id)
			if err != nil {
				return err
			}

			var (
				ev       model.Event
				comments []model.Comment
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				ev, err = h.Events.Get(gctx, sess, c.EventID)
				return err
			})
			g.Go(func() error {
				var err error
				comments, err = h.Contributions.ListComments(gctx, sess, id)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			role := sess.Role()
			data["Contribution"] = c
			data["Event"] = ev
			data["Comments"] = comments
			data["CanReview"] = access.CanReview(role)
			data["CanComment"] = access.CanComment(role)
			data["CanEdit"] = access.CanEditContribution(access.EditCheck{
				Role:         role,
				ActorID:      sess.User.UserID,
				Contribution: c,
				Event:        ev,
				Now:          h.now(),
			})
			data["CommentForm"] = commentForm{}
			data["Errors"] = map[string]string{}
			return nil
		},
	})
}

// ContributionNew renders the submission form for an open event. GET /contributions/new?event_id=.
func (h *UIHandlers) ContributionNew(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	eventID := queryInt(r, "event_id", 0)
	h.Page(w, r, PageSpec{
		Meta:   contributionFormMeta(FormModeCreate),
		Action: "load magazine",
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["FormData"] = contributionForm{EventID: eventID}
			data["Mode"] = FormModeCreate
			data["Errors"] = map[string]string{}
			if eventID <= 0 {
				return apperrors.Validation("Choose a magazine to submit to.")
			}
			ev, err := h.Events.Get(ctx, sess, eventID)
			if err != nil {
				return err
			}
			data["Event"] = ev
			if !access.CanSubmitContribution(sess.Role(), ev, h.now()) {
				return apperrors.Forbidden("This magazine is closed for new contributions.")
			}
			data["CanSubmit"] = true
			return nil
		},
	})
}

func parseContributionForm(r *http.Request) (contributionForm, map[string]string) {
	return parseAndValidate(r, func(f postedForm) contributionForm {
		return contributionForm{
			Title:       f.Get("title"),
			Description: f.Get("description"),
			EventID:     formInt(f.Get("event_id")),
		}
	})
}

func (f contributionForm) request() model.ContributionRequest {
	return model.ContributionRequest{Title: f.Title, Description: f.Description, EventID: f.EventID}
}

// ContributionCreate handles POST /contributions.
func (h *UIHandlers) ContributionCreate(w http.ResponseWriter, r *http.Request) {
	if RoleFromContext(r.Context()) != domainauth.RoleStudent {
		h.Forbidden(w, r)
		return
	}
	var created model.Contribution
	HandleForm(FormHandlerOpts[contributionForm]{
		Handler: h, W: w, R: r, Mode: FormModeCreate,
		Parser: parseContributionForm,
		Submit: func(ctx context.Context, f contributionForm) error {
			var err error
			created, err = h.Contributions.Create(ctx, session(r), f.request())
			return err
		},
		Renderer: h.renderForm,
		SuccessURLFunc: func() string {
			if created.ID > 0 {
				return contributionURL(created.ID)
			}
			return "/contributions"
		},
		SuccessMessage: "Contribution submitted.",
		Action:         "submit contribution",
		PageMeta:       contributionFormMeta(FormModeCreate),
		ExtraData:      map[string]any{"CanSubmit": true},
	})
}

// loadEditable fetches a contribution and its event and reports whether the session may edit it.
func (h *UIHandlers) loadEditable(
	ctx context.Context,
	sess domainauth.Session,
	id int,
) (model.Contribution, model.Event, bool, error) {
	c, err := h.Contributions.Get(ctx, sess, id)
	if err != nil {
		return model.Contribution{}, model.Event{}, false, err
	}
	ev, err := h.Events.Get(ctx, sess, c.EventID)
	if err != nil {
		return c, model.Event{}, false, err
	}
	ok := access.CanEditContribution(access.EditCheck{
		Role:         sess.Role(),
		ActorID:      sess.User.UserID,
		Contribution: c,
		Event:        ev,
		Now:          h.now(),
	})
	return c, ev, ok, nil
}

//nolint:gochecknoglobals // sentinel
var errNotEditable = apperrors.Forbidden("This contribution can no longer be edited.")

// ContributionEdit renders the edit form. GET /contributions/{id}/edit.
func (h *UIHandlers) ContributionEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.Page(w, r, PageSpec{
		Meta:   contributionFormMeta(FormModeEdit),
		Action: "load contribution",
		Fetch: func(ctx context.Context, data map[string]any) error {
			c, ev, editable, err := h.loadEditable(ctx, session(r), id)
			if err != nil {
				return err
			}
			data["Contribution"] = c
			data["Event"] = ev
			data["FormData"] = contributionForm{Title: c.Title, Description: c.Description, EventID: c.EventID}
			data["Mode"] = FormModeEdit
			data["Errors"] = map[string]string{}
			if !editable {
				return errNotEditable
			}
			data["CanSubmit"] = true
			return nil
		},
	})
}

// ContributionUpdate handles POST /contributions/{id}/edit.
func (h *UIHandlers) ContributionUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	HandleForm(FormHandlerOpts[contributionForm]{
		Handler: h, W: w, R: r, Mode: FormModeEdit,
		Parser: parseContributionForm,
		Submit: func(ctx context.Context, f contributionForm) error {
			_, _, editable, err := h.loadEditable(ctx, session(r), id)
			if err != nil {
				return err
			}
			if !editable {
				return errNotEditable
			}
			_, err = h.Contributions.Update(ctx, session(r), id, f.request())
			return err
		},
		Renderer:       h.renderForm,
		SuccessURL:     contributionURL(id),
		SuccessMessage: "Contribution updated.",
		Action:         "update contribution",
		PageMeta:       contributionFormMeta(FormModeEdit),
		ExtraData: map[string]any{
			"Contribution": model.Contribution{ID: id},
			"CanSubmit":    true,
		},
	})
}

// ContributionReview accepts or rejects a contribution. POST /contributions/{id}/review.
func (h *UIHandlers) ContributionReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	back := contributionURL(id)
	if !access.CanReview(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	status, valid := model.ParseContributionStatus(r.PostFormValue("status"))
	if !valid || status == model.ContributionPending {
		h.failAction(w, r, apperrors.Validation("Choose accept or reject."), "review contribution", back)
		return
	}
	if _, err := h.Contributions.Review(r.Context(), session(r), id, status); err != nil {
		h.failAction(w, r, err, "review contribution", back)
		return
	}
	h.succeed(w, r, "Contribution "+string(status)+".", back)
}

// ContributionComment adds a comment. POST /contributions/{id}/comments.
func (h *UIHandlers) ContributionComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	back := contributionURL(id)
	if !access.CanComment(RoleFromContext(r.Context())) {
		h.Forbidden(w, r)
		return
	}
	form, errs := parseAndValidate(r, func(f postedForm) commentForm {
		return commentForm{Content: f.Get("content")}
	})
	if msg, bad := errs["content"]; bad {
		h.failAction(w, r, apperrors.Validation(msg), "add comment", back)
		return
	}
	if _, err := h.Contributions.AddComment(r.Context(), session(r), id, form.Content); err != nil {
		h.failAction(w, r, err, "add comment", back)
		return
	}
	h.succeed(w, r, "Comment added.", back)
}
