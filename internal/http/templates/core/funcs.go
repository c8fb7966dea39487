package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
	"github.com/uni-magazine/portal/internal/http/uiutil"
)

// Deps holds dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	// Now is the clock used for relative times. Defaults to time.Now.
	Now func() time.Time
}

// Funcs returns helpers shared by every portal template.
func Funcs(deps Deps) template.FuncMap {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": func(v any) string { return uiutil.FormatFriendlyDateTime(toTime(v)) },
		"friendlyDate": func(v any) string { return uiutil.FormatFriendlyDate(toTime(v)) },
		"relativeTime": func(v any) string {
			t := toTime(v)
			if t.IsZero() {
				return ""
			}
			return uiutil.FriendlyRelativeTime(t, now())
		},
		"deadline":     func(v any) string { return uiutil.DaysUntil(toTime(v), now()) },
		"timeTag":      timeTag,
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"contains":     strings.Contains,
		"truncateText": TruncateText,
		"initials":     uiutil.Initials,
		"statusClass":  StatusClass,
		"roleLabel":    func(r domainauth.Role) string { return r.Label() },
		"fieldError":   fieldError,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - output of our own html/template set; values were escaped during execution
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// toTime accepts the time shapes that reach templates.
func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case model.Timestamp:
		return t.Time
	case *model.Timestamp:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

func timeTag(v any) template.HTML {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	// #nosec G203 - built from escaped values only
	return template.HTML(fmt.Sprintf(
		`<time datetime="%s" title="%s">%s</time>`,
		t.UTC().Format(time.RFC3339),
		template.HTMLEscapeString(t.Local().Format(time.RFC1123)),
		template.HTMLEscapeString(uiutil.FormatFriendlyDateTime(t)),
	))
}

// StatusClass maps a contribution status to its badge class.
func StatusClass(status model.ContributionStatus) string {
	switch status {
	case model.ContributionAccepted:
		return "badge-success"
	case model.ContributionRejected:
		return "badge-danger"
	case model.ContributionPending:
		return "badge-warning"
	default:
		return "badge-light"
	}
}

// TruncateText truncates a string to maxLen runes, adding an ellipsis.
// maxLen may be any numeric type for template flexibility.
func TruncateText(s string, maxLen any) string {
	var n int
	switch v := maxLen.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	default:
		return s
	}
	if n <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, n)
}

// fieldError looks up a field message in the Errors map templates receive.
func fieldError(errs any, field string) string {
	m, ok := errs.(map[string]string)
	if !ok {
		return ""
	}
	return m[field]
}
