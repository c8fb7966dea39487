package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_LoadTemplates(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	require.NotNil(t, tr, "Template renderer should not be nil")
	require.NotNil(t, tr.t, "Template should be loaded")

	names := make(map[string]bool)
	for _, tmpl := range tr.t.Templates() {
		names[tmpl.Name()] = true
	}

	expected := []string{
		"layout", "content", "error-layout",
		"home-content", "forbidden-content", "login-content", "register-content",
		"users-content", "user-form-content", "faculties-content",
		"events-content", "event-view-content", "event-form-content",
		"contributions-content", "contribution-view-content", "contribution-form-content",
	}
	for _, name := range expected {
		assert.True(t, names[name], "Template %s should be loaded", name)
	}
}

func TestTemplateRenderer_EveryPageHasContent(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	for page, name := range contentTemplates {
		assert.NotNil(t, tr.t.Lookup(name), "page %s maps to missing template %s", page, name)
	}
}
