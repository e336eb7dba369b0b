package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/render"
)

// RenderToString renders el without handle markers and returns the HTML.
//
// Example:
//
//	html := vtest.RenderToString(host)
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(el *dom.Element) string {
	r := render.NewRenderer(render.RendererConfig{OmitHIDs: true})
	html, err := r.RenderToString(el)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, el *dom.Element, expected string) {
	t.Helper()
	html := RenderToString(el)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, el *dom.Element, unexpected string) {
	t.Helper()
	html := RenderToString(el)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectInnerHTML asserts the exact serialized content of el.
func ExpectInnerHTML(t testing.TB, el *dom.Element, want string) {
	t.Helper()
	if got := render.InnerHTML(el); got != want {
		t.Errorf("inner HTML = %q, want %q", got, want)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
