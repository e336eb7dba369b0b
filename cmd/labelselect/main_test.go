package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/labelselect/internal/errors"
)

const pageYAML = `title: Pickers
controls:
  - id: lang
    config:
      replacedLabelOnSelect: false
      values:
        - {id: fr, label: French}
        - {id: de, label: German}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labelselect.yaml")
	if err := os.WriteFile(path, []byte(pageYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender(t *testing.T) {
	path := writePage(t)

	out, err := run(t, "render", "-c", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<title>Pickers</title>", `<li class="selected" data-id="none">`, `<li data-id="fr">French</li>`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "data-hid") {
		t.Error("static output should not carry handles")
	}
}

func TestRenderWithSelection(t *testing.T) {
	path := writePage(t)

	out, err := run(t, "render", "-c", path, "--select", "lang=de")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<li class="selected" data-id="de">German</li>`) {
		t.Error("de should be the selected entry")
	}
	if !strings.Contains(out, "<span>German</span>") {
		t.Error("label should show the selection")
	}
}

func TestRenderErrors(t *testing.T) {
	path := writePage(t)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"bad select flag", []string{"render", "-c", path, "--select", "lang"}, "LS030"},
		{"unknown option", []string{"render", "-c", path, "--select", "lang=xx"}, "LS003"},
		{"unknown host", []string{"render", "-c", path, "--select", "city=xx"}, "LS021"},
		{"missing file", []string{"render", "-c", filepath.Join(t.TempDir(), "nope.yaml")}, "LS010"},
		{"bad log level", []string{"render", "-c", path, "--log-level", "loud"}, "LS030"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if code := errors.CodeOf(err); code != tt.code {
				t.Errorf("code = %q, want %q (%v)", code, tt.code, err)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}
