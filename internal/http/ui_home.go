package httpx

import (
	"context"
	"net/http"
	"sort"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
)

const recentContributionsLimit = 5

// Home renders the role home page. GET /.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	h.Page(w, r, PageSpec{
		Meta:   PageMeta{Title: "Home", PageTitle: "Home", CurrentPage: PageHome},
		Action: "load your dashboard",
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Greeting"] = sess.User.DisplayName()
			if !showsMagazineFeed(sess.Role()) {
				return nil
			}
			return h.loadHomeFeed(ctx, sess, data)
		},
	})
}

func showsMagazineFeed(role domainauth.Role) bool {
	switch role {
	case domainauth.RoleMarketingCoordinator, domainauth.RoleStudent, domainauth.RoleGuest:
		return true
	default:
		return false
	}
}

// loadHomeFeed fetches open magazines and recent contributions concurrently.
func (h *UIHandlers) loadHomeFeed(ctx context.Context, sess domainauth.Session, data map[string]any) error {
	var (
		open   []model.Event
		recent []model.Contribution
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		open, err = h.Events.ListOpen(gctx, sess, h.now())
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = h.Contributions.List(gctx, sess, model.ContributionFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].SubmittedAt.After(recent[j].SubmittedAt.Time)
	})
	if len(recent) > recentContributionsLimit {
		recent = recent[:recentContributionsLimit]
	}
	data["OpenEvents"] = open
	data["RecentContributions"] = recent
	return nil
}
