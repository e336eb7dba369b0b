package server

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/labelselect/internal/config"
	lserrors "github.com/vango-dev/labelselect/internal/errors"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Title = "Pickers"
	cfg.Controls = []config.Control{
		{
			ID:    "lang",
			Text:  "Pick a language",
			Width: "160px",
			Config: map[string]any{
				"replacedLabelOnSelect": false,
				"values": []any{
					map[string]any{"id": "fr", "label": "French"},
					map[string]any{"id": "de", "label": "German"},
				},
			},
		},
		{ID: "country", Width: "120px"},
	}
	return cfg
}

func TestNewPage(t *testing.T) {
	page, err := NewPage(testConfig())
	if err != nil {
		t.Fatalf("NewPage error: %v", err)
	}
	if page.ID == "" {
		t.Error("page should have an id")
	}

	lang := page.Host("lang")
	if lang == nil || lang.Tag != "label" {
		t.Fatalf("lang host = %v", lang)
	}
	if got := lang.Style("width"); got != "160px" {
		t.Errorf("lang width = %q", got)
	}
	if len(lang.FindByClass("labelSelect")) != 1 {
		t.Error("initial configuration should render the control")
	}

	events := page.Drain()
	want := []EmittedEvent{{"lang", "refreshed"}, {"country", "refreshed"}}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Errorf("events = %v, want %v", events, want)
	}
	if again := page.Drain(); len(again) != 0 {
		t.Errorf("second Drain = %v, want empty", again)
	}
}

func TestNewPageRejectsReservedID(t *testing.T) {
	cfg := testConfig()
	cfg.Controls[1].Config = map[string]any{
		"values": []any{map[string]any{"id": "none", "label": "x"}},
	}
	_, err := NewPage(cfg)
	if code := lserrors.CodeOf(err); code != "LS011" {
		t.Errorf("code = %q, want LS011 (%v)", code, err)
	}
}

func TestPageCall(t *testing.T) {
	page, err := NewPage(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	page.Drain()
	ctx := context.Background()

	tests := []struct {
		name   string
		host   string
		args   []any
		result any
		code   string
	}{
		{"getter", "lang", []any{"theme"}, "white", ""},
		{"setter", "lang", []any{"theme", "dark"}, nil, ""},
		{"select", "lang", []any{"setSelected", "de"}, nil, ""},
		{"selected", "lang", []any{"getSelected"}, "de", ""},
		{"configure", "country", []any{map[string]any{"unfoldDir": "up"}}, nil, ""},
		{"unknown option id", "lang", []any{"setSelected", "xx"}, nil, "LS003"},
		{"unknown host", "nope", []any{"refresh"}, nil, "LS021"},
		{"no args", "lang", nil, nil, "LS020"},
		{"bad shape", "lang", []any{12.0}, nil, "LS020"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := page.Call(ctx, tt.host, tt.args)
			if code := lserrors.CodeOf(err); code != tt.code {
				t.Fatalf("code = %q, want %q (%v)", code, tt.code, err)
			}
			if got != tt.result {
				t.Errorf("result = %v, want %v", got, tt.result)
			}
		})
	}

	if got := page.Host("lang").FindByClass("theme_dark"); len(got) != 1 {
		t.Error("setter should re-render with the new theme")
	}
}

func TestPageClick(t *testing.T) {
	page, err := NewPage(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	page.Drain()

	container := page.Host("lang").FindByClass("labelSelect")[0]
	if err := page.Click(container.HID()); err != nil {
		t.Fatal(err)
	}
	entry := page.Host("lang").FindByAttr("data-id", "fr")[0]
	if err := page.Click(entry.HID()); err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, ev := range page.Drain() {
		names = append(names, ev.Host+":"+ev.Name)
	}
	want := "lang:unfolded lang:change lang:selectOption lang:folded"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}

	if err := page.Click("h99999"); lserrors.CodeOf(err) != "LS021" {
		t.Errorf("unknown hid err = %v", err)
	}
}

func TestPageDocument(t *testing.T) {
	page, err := NewPage(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	static, err := page.Document(false, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<title>Pickers</title>", `<label id="lang"`, `data-id="fr"`, "French", "labelSelect"} {
		if !strings.Contains(static, want) {
			t.Errorf("static document missing %q", want)
		}
	}
	for _, unwanted := range []string{"data-hid", "<script>"} {
		if strings.Contains(static, unwanted) {
			t.Errorf("static document should not contain %q", unwanted)
		}
	}

	live, err := page.Document(false, false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(live, "data-hid") || !strings.Contains(live, "new WebSocket") {
		t.Error("live document needs handles and the client script")
	}
	if !strings.HasPrefix(page.AppHTML(), `<main id="app"`) {
		t.Errorf("AppHTML = %.40q", page.AppHTML())
	}
}
