package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/uni-magazine/portal/internal/domain/access"
	"github.com/uni-magazine/portal/internal/http/ui/viewmodel"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout derives the chrome (user badge, role navigation, capabilities) from the request.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	sess := GetSessionFromContext(r.Context())
	if sess == nil || !sess.IsAuthenticated {
		return layout
	}
	role := sess.Role()
	layout.IsAuthenticated = true
	layout.User = &viewmodel.User{
		ID:        sess.User.UserID,
		Name:      sess.User.DisplayName(),
		Email:     sess.User.Email,
		Role:      role,
		RoleLabel: role.Label(),
	}
	layout.Navigation = access.ActiveSection(access.NavigationFor(role), r.URL.Path)
	layout.Can = access.CapabilitiesFor(role)
	return layout
}

// basePageData constructs the common page data map.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Navigation":      layout.Navigation,
		"Can":             layout.Can,
		"CSRFToken":       layout.CSRFToken,
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PaginationData describes one page of an in-memory list.
type PaginationData struct {
	Page     int
	PageSize int
	// Total is the number of items before paging.
	Total    int
	BasePath string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithPagination adds a viewmodel.Pagination under "Pagination".
func (b *TemplateDataBuilder) WithPagination(p PaginationData) *TemplateDataBuilder {
	vm := viewmodel.NewPagination(p.Page, p.PageSize, p.Total)
	if vm.HasPrev {
		vm.PrevURL = buildPageURL(p.BasePath, b.r.URL.Query(), pageOpts{Page: vm.Page - 1, PageSize: vm.PageSize})
	}
	if vm.HasNext {
		vm.NextURL = buildPageURL(p.BasePath, b.r.URL.Query(), pageOpts{Page: vm.Page + 1, PageSize: vm.PageSize})
	}
	b.data["Pagination"] = vm
	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// pageOpts represents pagination options for list views.
type pageOpts struct {
	Page     int
	PageSize int
}

// getPageParams parses page and page_size with sane defaults.
func getPageParams(q url.Values) pageOpts {
	p := pageOpts{Page: 1, PageSize: defaultPageSize}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("page_size")); err == nil && n > 0 && n <= maxPageSize {
		p.PageSize = n
	}
	return p
}

// pageSlice returns the items of page p.
func pageSlice[T any](items []T, p pageOpts) []T {
	start := (p.Page - 1) * p.PageSize
	if start >= len(items) {
		return []T{}
	}
	return items[start:min(start+p.PageSize, len(items))]
}

// buildPageURL returns basePath with page and page_size set, keeping other non-blank query params.
func buildPageURL(basePath string, q url.Values, p pageOpts) string {
	qq := make(url.Values, len(q))
	for k, v := range q {
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") {
			continue
		}
		kept := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			qq[k] = kept
		}
	}
	qq.Set("page", strconv.Itoa(p.Page))
	qq.Set("page_size", strconv.Itoa(p.PageSize))
	return basePath + "?" + qq.Encode()
}
