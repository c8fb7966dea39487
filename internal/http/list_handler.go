package httpx

import (
	"context"
	"net/http"
	"net/url"
)

// ListFetcher loads the full list for a screen. The portal API does not page, so paging
// happens in memory.
type ListFetcher[T any] func(ctx context.Context) ([]T, error)

// FilterParser is a function type for parsing URL query parameters into filter data.
// The error allows the handler to show meaningful validation errors for invalid filter params.
type FilterParser[F any] func(url.Values) (F, error)

// FilteredFetcher loads the list narrowed by parsed filters.
type FilteredFetcher[T any, F any] func(ctx context.Context, filters F) ([]T, error)

// DataEnricher is a function type for enriching template data after fetching items.
// It receives the items of the current page only.
type DataEnricher[T any, F any] func(builder *TemplateDataBuilder, items []T, filters F)

// ListHandlerOpts contains all options needed for the generic list handler.
type ListHandlerOpts[T any, F any] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	// Use Fetcher OR FilteredFetcher. FilteredFetcher takes precedence.
	Fetcher         ListFetcher[T]
	FilteredFetcher FilteredFetcher[T, F]
	FilterParser    FilterParser[F]
	EnrichData      DataEnricher[T, F]
	// BasePath is the base URL path for pagination links (e.g., "/events")
	BasePath string
	PageMeta PageMeta
	// ItemsKey is the template data key for the items (e.g., "Events")
	ItemsKey string
	// Action completes "Failed to <action>." when loading fails.
	Action string
}

// HandleList renders a paged list view with consistent filtering and error handling.
//
// Usage example:
//
//	HandleList(ListHandlerOpts[model.Contribution, contributionFilter]{
//	    Handler: h, W: w, R: r,
//	    FilteredFetcher: func(ctx context.Context, f contributionFilter) ([]model.Contribution, error) {
//	        return h.Contributions.List(ctx, session(r), f.model())
//	    },
//	    FilterParser: parseContributionFilter,
//	    BasePath:     "/contributions",
//	    ItemsKey:     "Contributions",
//	    Action:       "load contributions",
//	})
func HandleList[T, F any](opts ListHandlerOpts[T, F]) {
	if opts.W == nil || opts.R == nil || opts.Handler == nil {
		if opts.W != nil {
			http.Error(opts.W, "Internal configuration error", http.StatusInternalServerError)
		}
		return
	}

	pg := getPageParams(opts.R.URL.Query())

	var filters F
	if opts.FilterParser != nil {
		var err error
		filters, err = opts.FilterParser(opts.R.URL.Query())
		if err != nil {
			opts.renderListError(pg, filters, "Invalid filter parameters: "+err.Error())
			return
		}
	}

	fetch := opts.fetcher(filters)
	if fetch == nil {
		opts.renderListError(pg, filters, "No data fetcher configured.")
		return
	}

	items, err := fetch(opts.R.Context())
	if err != nil {
		view := describeError(err, opts.Action)
		if view.Unauthorized {
			opts.Handler.expireSession(opts.W, opts.R)
			return
		}
		opts.Handler.logFailure(opts.R, "list fetch failed", err, "page", opts.PageMeta.CurrentPage)
		opts.renderListError(pg, filters, view.Message)
		return
	}

	page := pageSlice(items, pg)
	builder := NewTemplateData(opts.R, opts.PageMeta).
		WithPagination(PaginationData{Page: pg.Page, PageSize: pg.PageSize, Total: len(items), BasePath: opts.BasePath}).
		With(opts.ItemsKey, page).
		With("Filters", filters)
	if opts.EnrichData != nil {
		opts.EnrichData(builder, page, filters)
	}
	opts.Handler.renderDashboardPage(opts.W, opts.R, builder.Build())
}

func (lh *ListHandlerOpts[T, F]) fetcher(filters F) ListFetcher[T] {
	switch {
	case lh.FilteredFetcher != nil:
		return func(ctx context.Context) ([]T, error) { return lh.FilteredFetcher(ctx, filters) }
	case lh.Fetcher != nil:
		return lh.Fetcher
	default:
		return nil
	}
}

// renderListError renders the list frame with an error and no items.
func (lh *ListHandlerOpts[T, F]) renderListError(pg pageOpts, filters F, errMsg string) {
	builder := NewTemplateData(lh.R, lh.PageMeta).
		WithPagination(PaginationData{Page: pg.Page, PageSize: pg.PageSize, BasePath: lh.BasePath}).
		With(lh.ItemsKey, []T{}).
		With("Filters", filters).
		WithError(errMsg)
	lh.Handler.renderDashboardPage(lh.W, lh.R, builder.Build())
}
