package core

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
)

func render(t *testing.T, src string, data any) string {
	t.Helper()
	var tmpl *template.Template
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	funcs := Funcs(Deps{
		Template:           &tmpl,
		ContentTemplateFor: func(p string) string { return p + "-content" },
		Now:                func() time.Time { return now },
	})
	tmpl = template.Must(template.New("root").Funcs(funcs).Parse(src))
	var sb strings.Builder
	require.NoError(t, tmpl.Execute(&sb, data))
	return sb.String()
}

func TestFuncs_RenderSection(t *testing.T) {
	out := render(t,
		`{{define "home-content"}}<p>{{.Name}}</p>{{end}}{{renderSection "home" .}}`,
		map[string]string{"Name": "<Ada>"})
	assert.Equal(t, "<p>&lt;Ada&gt;</p>", out)
}

func TestFuncs_Times(t *testing.T) {
	closes := model.NewTimestamp(time.Date(2026, 3, 13, 13, 0, 0, 0, time.UTC))
	out := render(t, `{{deadline .}}|{{relativeTime .}}`, closes)
	assert.Equal(t, "closes in 3 days|just now", out)

	assert.Empty(t, render(t, `{{timeTag .}}{{friendlyDate .}}`, model.Timestamp{}))
	assert.Contains(t, render(t, `{{timeTag .}}`, closes), `datetime="2026-03-13T13:00:00Z"`)
}

func TestFuncs_Helpers(t *testing.T) {
	data := map[string]any{
		"Errors": map[string]string{"title": "Title is required."},
		"Role":   domainauth.RoleMarketingCoordinator,
		"Status": model.ContributionRejected,
	}
	out := render(t, `{{fieldError .Errors "title"}}|{{fieldError .Errors "x"}}|{{roleLabel .Role}}|{{statusClass .Status}}|{{add 1 2}}`, data)
	assert.Equal(t, "Title is required.||Marketing Coordinator|badge-danger|3", out)
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "badge-success", StatusClass(model.ContributionAccepted))
	assert.Equal(t, "badge-warning", StatusClass(model.ContributionPending))
	assert.Equal(t, "badge-light", StatusClass("archived"))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", TruncateText("hello", "x"))
	assert.Equal(t, "hell…", TruncateText("hello world", 5))
	assert.Equal(t, "hello world", TruncateText("hello world", 0))
}
