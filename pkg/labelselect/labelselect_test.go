package labelselect_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	lserrors "github.com/vango-dev/labelselect/internal/errors"
	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/labelselect"
	"github.com/vango-dev/labelselect/pkg/render"
	"github.com/vango-dev/labelselect/pkg/vtest"
)

var abValues = []labelselect.Option{
	{ID: "a", Label: "A"},
	{ID: "b", Label: "B"},
}

// setup returns a page whose "lang" host is configured with abValues and
// label replacement turned off.
func setup(t *testing.T, ids ...string) *vtest.Page {
	t.Helper()
	if len(ids) == 0 {
		ids = []string{"lang"}
	}
	page := vtest.NewPage(t, ids...)
	for _, id := range ids {
		err := page.Control(id).Configure(labelselect.Partial{
			"values":                abValues,
			"replacedLabelOnSelect": false,
		})
		if err != nil {
			t.Fatalf("Configure(%s) error: %v", id, err)
		}
	}
	return page
}

func selectedEntries(host *dom.Element) []string {
	var ids []string
	for _, li := range host.FindByClass("selected") {
		id, _ := li.Attr("data-id")
		ids = append(ids, id)
	}
	return ids
}

func TestFirstAttachDefaults(t *testing.T) {
	page := vtest.NewPage(t, "lang")
	ctl := page.Control("lang")

	tests := []struct {
		key  string
		want any
	}{
		{labelselect.KeyReplacedLabelOnSelect, true},
		{labelselect.KeyExtraClass, ""},
		{labelselect.KeyFor, false},
		{labelselect.KeyHighlightSel, true},
		{labelselect.KeyTheme, "white"},
		{labelselect.KeyUnfoldDir, "down"},
		{labelselect.KeyWidth, "120px"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ctl.Option(tt.key); got != tt.want {
				t.Errorf("Option(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	if got := ctl.Option(labelselect.KeyValues).([]labelselect.Option); len(got) != 0 {
		t.Errorf("values = %v, want empty", got)
	}
	if page.Container("lang") != nil {
		t.Error("a getter must not render")
	}
	if got := ctl.Option("bogus"); got != nil {
		t.Errorf("Option(bogus) = %v, want nil", got)
	}
}

func TestRefreshRendersEntriesInOrder(t *testing.T) {
	page := setup(t)
	host := page.Host("lang")

	got := page.Registry.Entries(host)
	want := []string{"none", "a", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("Entries = %v, want %v", got, want)
	}
	if sel := selectedEntries(host); !slices.Equal(sel, []string{"none"}) {
		t.Errorf("selected entries = %v, want [none]", sel)
	}

	for _, prop := range []struct{ name, want string }{
		{"position", "relative"},
		{"height", "1.6em"},
		{"display", "inline-block"},
		{"width", "120px"},
		{"min-width", "120px"},
	} {
		if v := host.Style(prop.name); v != prop.want {
			t.Errorf("host style %s = %q, want %q", prop.name, v, prop.want)
		}
	}

	label := page.Label("lang")
	if !label.HasClass("selected-none") {
		t.Error("label should carry selected-none")
	}
	if label.ChildCount() != 0 {
		t.Errorf("label should be empty, got %q", render.InnerHTML(label))
	}
	vtest.ExpectContains(t, host, `<li data-id="a">A</li>`)
}

func TestContainerClasses(t *testing.T) {
	tests := []struct {
		name    string
		partial labelselect.Partial
		want    []string
	}{
		{
			name: "defaults",
			want: []string{"labelSelect", "highlight-selection", "theme_white", "unfold_down"},
		},
		{
			name: "custom",
			partial: labelselect.Partial{
				"highlightSel": false,
				"theme":        "dark",
				"unfoldDir":    "up",
				"extraClass":   "big  wide",
			},
			want: []string{"labelSelect", "theme_dark", "unfold_up", "big", "wide"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := vtest.NewPage(t, "lang")
			if err := page.Control("lang").Configure(tt.partial); err != nil {
				t.Fatal(err)
			}
			if got := page.Container("lang").Classes(); !slices.Equal(got, tt.want) {
				t.Errorf("classes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnfoldDirectionPlacesList(t *testing.T) {
	page := setup(t)
	children := page.Container("lang").Children()
	if children[0].Tag != "span" || children[1].Tag != "ul" {
		t.Errorf("down: got %s,%s want span,ul", children[0].Tag, children[1].Tag)
	}

	if err := page.Control("lang").SetOption("unfoldDir", "up"); err != nil {
		t.Fatal(err)
	}
	children = page.Container("lang").Children()
	if children[0].Tag != "ul" || children[1].Tag != "span" {
		t.Errorf("up: got %s,%s want ul,span", children[0].Tag, children[1].Tag)
	}
}

func TestReservedIdentifierLeavesStateUntouched(t *testing.T) {
	page := setup(t)
	ctl := page.Control("lang")
	host := page.Host("lang")
	before := vtest.RenderToString(host)

	err := ctl.Configure(labelselect.Partial{
		"values": []labelselect.Option{{ID: "x", Label: "X"}, {ID: "none", Label: "Nope"}},
		"theme":  "dark",
	})
	if !errors.Is(err, labelselect.ErrReservedIdentifier) {
		t.Fatalf("err = %v, want ErrReservedIdentifier", err)
	}
	if code := lserrors.CodeOf(err); code != "LS001" {
		t.Errorf("code = %q, want LS001", code)
	}

	if got := ctl.Option("values").([]labelselect.Option); !slices.Equal(got, abValues) {
		t.Errorf("values = %v, want unchanged %v", got, abValues)
	}
	if got := ctl.Option("theme"); got != "white" {
		t.Errorf("theme = %v, want white (whole update rejected)", got)
	}
	if after := vtest.RenderToString(host); after != before {
		t.Errorf("rendering changed:\nbefore %s\nafter  %s", before, after)
	}

	err = ctl.SetOption("values", []any{map[string]any{"id": "none", "label": "x"}})
	if !errors.Is(err, labelselect.ErrReservedIdentifier) {
		t.Errorf("SetOption err = %v, want ErrReservedIdentifier", err)
	}
}

func TestSelectedIsNoneAfterFirstRender(t *testing.T) {
	page := vtest.NewPage(t, "lang")
	ctl := page.Control("lang")
	if err := ctl.Refresh(); err != nil {
		t.Fatal(err)
	}
	if got := ctl.Selected(); got != "none" {
		t.Errorf("Selected() = %q, want none", got)
	}
}

func TestSetSelected(t *testing.T) {
	page := setup(t)
	ctl := page.Control("lang")
	host := page.Host("lang")
	rec := vtest.Record(host, labelselect.Events...)

	if err := ctl.SetSelected("b"); err != nil {
		t.Fatalf("SetSelected(b) error: %v", err)
	}
	vtest.ExpectEvents(t, rec, "change", "selectOption")
	if got := ctl.Selected(); got != "b" {
		t.Errorf("Selected() = %q, want b", got)
	}
	label := page.Label("lang")
	vtest.ExpectInnerHTML(t, label, "B")
	if label.HasClass("selected-none") {
		t.Error("label should not carry selected-none")
	}
	if sel := selectedEntries(host); !slices.Equal(sel, []string{"b"}) {
		t.Errorf("selected entries = %v, want [b]", sel)
	}
	if ctl.IsOpen() {
		t.Error("setSelected must not unfold the list")
	}

	t.Run("same id does not emit change", func(t *testing.T) {
		rec.Reset()
		if err := ctl.SetSelected("b"); err != nil {
			t.Fatal(err)
		}
		vtest.ExpectEvents(t, rec, "selectOption")
	})

	t.Run("none", func(t *testing.T) {
		rec.Reset()
		if err := ctl.SetSelected("none"); err != nil {
			t.Fatal(err)
		}
		vtest.ExpectEvents(t, rec, "change", "selectNone")
		if got := ctl.Selected(); got != "none" {
			t.Errorf("Selected() = %q, want none", got)
		}
		if !page.Label("lang").HasClass("selected-none") {
			t.Error("label should carry selected-none")
		}
	})

	t.Run("selection survives refresh", func(t *testing.T) {
		if err := ctl.SetSelected("a"); err != nil {
			t.Fatal(err)
		}
		if err := ctl.Refresh(); err != nil {
			t.Fatal(err)
		}
		if sel := selectedEntries(host); !slices.Equal(sel, []string{"a"}) {
			t.Errorf("selected entries = %v, want [a]", sel)
		}
		vtest.ExpectInnerHTML(t, page.Label("lang"), "A")
	})
}

func TestSetSelectedInvalidArgument(t *testing.T) {
	page := setup(t)
	ctl := page.Control("lang")
	if err := ctl.SetSelected("a"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		arg  any
		code string
	}{
		{"unknown id", "zzz", "LS003"},
		{"empty string", "", "LS002"},
		{"not a string", 5, "LS002"},
		{"nil", nil, "LS002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := page.Registry.Dispatch(context.Background(), page.Host("lang"),
				labelselect.Command{Name: labelselect.CmdSetSelected, Arg: tt.arg})
			if !errors.Is(err, labelselect.ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if code := lserrors.CodeOf(err); code != tt.code {
				t.Errorf("code = %q, want %q", code, tt.code)
			}
			if got := ctl.Selected(); got != "a" {
				t.Errorf("Selected() = %q, want a (unchanged)", got)
			}
		})
	}
}

func TestReplaceLabel(t *testing.T) {
	t.Run("no-op when nothing is selected", func(t *testing.T) {
		page := setup(t)
		host := page.Host("lang")
		before := vtest.RenderToString(host)
		rec := vtest.Record(host, labelselect.Events...)

		if err := page.Control("lang").ReplaceLabel(); err != nil {
			t.Fatal(err)
		}
		if after := vtest.RenderToString(host); after != before {
			t.Errorf("host changed:\nbefore %s\nafter  %s", before, after)
		}
		vtest.ExpectEvents(t, rec)
	})

	t.Run("collapses to the selected markup", func(t *testing.T) {
		page := vtest.NewPage(t, "lang")
		ctl := page.Control("lang")
		host := page.Host("lang")
		err := ctl.Configure(labelselect.Partial{
			"values": []labelselect.Option{{ID: "fr", Label: "<b>French</b>"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		rec := vtest.Record(host, labelselect.Events...)

		if err := ctl.SetSelected("fr"); err != nil {
			t.Fatal(err)
		}
		vtest.ExpectEvents(t, rec, "change", "selectOption", "replacedLabel")
		vtest.ExpectInnerHTML(t, host, "<b>French</b>")
		for _, prop := range []string{"position", "height", "display", "width", "min-width"} {
			if v := host.Style(prop); v != "" {
				t.Errorf("style %s = %q, want stripped", prop, v)
			}
		}
		if got := ctl.Selected(); got != "fr" {
			t.Errorf("Selected() = %q, want fr", got)
		}
		if entries := page.Registry.Entries(host); len(entries) != 0 {
			t.Errorf("Entries = %v, want none after collapse", entries)
		}

		err = ctl.SetSelected("fr")
		if !errors.Is(err, labelselect.ErrInvalidArgument) {
			t.Errorf("SetSelected on a collapsed host: err = %v, want ErrInvalidArgument", err)
		}

		rec.Reset()
		host.Click()
		vtest.ExpectEvents(t, rec, "refreshed")
		if sel := selectedEntries(host); !slices.Equal(sel, []string{"fr"}) {
			t.Errorf("after re-init selected = %v, want [fr]", sel)
		}
		vtest.ExpectInnerHTML(t, page.Label("lang"), "<b>French</b>")
	})
}

func TestFoldStateMachine(t *testing.T) {
	page := setup(t, "lang", "country")
	lang, country := page.Control("lang"), page.Control("country")
	langRec := vtest.Record(page.Host("lang"), labelselect.EventUnfolded, labelselect.EventFolded)
	countryRec := vtest.Record(page.Host("country"), labelselect.EventUnfolded, labelselect.EventFolded)

	page.Container("lang").Click()
	if !lang.IsOpen() {
		t.Fatal("lang should be open")
	}
	list := page.Container("lang").ChildByTag("ul")
	if got := list.Style("max-height"); got != "6.4em" {
		t.Errorf("max-height = %q, want 6.4em", got)
	}
	vtest.ExpectEvents(t, langRec, "unfolded")

	page.Container("country").Click()
	if lang.IsOpen() || !country.IsOpen() {
		t.Fatalf("open: lang=%v country=%v, want only country", lang.IsOpen(), country.IsOpen())
	}
	vtest.ExpectEvents(t, langRec, "unfolded", "folded")
	vtest.ExpectEvents(t, countryRec, "unfolded")
	if got := list.Style("max-height"); got != "0" {
		t.Errorf("lang max-height = %q, want 0", got)
	}

	page.Outside.Click()
	if country.IsOpen() {
		t.Error("outside click should fold country")
	}
	vtest.ExpectEvents(t, countryRec, "unfolded", "folded")

	page.Container("lang").Click()
	page.Container("lang").Click()
	if lang.IsOpen() {
		t.Error("second toggle should fold lang")
	}
}

func TestEntryClickBubblesToToggle(t *testing.T) {
	page := setup(t)
	ctl := page.Control("lang")
	rec := vtest.Record(page.Host("lang"), labelselect.Events...)

	page.Container("lang").Click()
	page.Entry("lang", "a").Click()

	vtest.ExpectEvents(t, rec, "unfolded", "change", "selectOption", "folded")
	if ctl.IsOpen() {
		t.Error("picking an entry should fold the list")
	}
	if got := ctl.Selected(); got != "a" {
		t.Errorf("Selected() = %q, want a", got)
	}
}

func TestEntryClickWithReplacement(t *testing.T) {
	page := setup(t)
	ctl := page.Control("lang")
	if err := ctl.SetOption("replacedLabelOnSelect", true); err != nil {
		t.Fatal(err)
	}
	rec := vtest.Record(page.Host("lang"), labelselect.Events...)

	page.Container("lang").Click()
	page.Entry("lang", "b").Click()

	vtest.ExpectEvents(t, rec, "unfolded", "change", "selectOption", "replacedLabel")
	vtest.ExpectInnerHTML(t, page.Host("lang"), "B")
	if ctl.IsOpen() {
		t.Error("collapsed control cannot be open")
	}
}

func TestHostClickRefreshes(t *testing.T) {
	page := setup(t)
	rec := vtest.Record(page.Host("lang"), labelselect.Events...)

	page.Container("lang").Click()
	page.Host("lang").Click()

	vtest.ExpectEvents(t, rec, "unfolded", "refreshed")
	if page.Control("lang").IsOpen() {
		t.Error("a refresh renders a folded list")
	}
}

func TestForAttribute(t *testing.T) {
	page := setup(t)
	ctl := page.Control("lang")
	host := page.Host("lang")

	if err := ctl.SetOption("for", "input-1"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"for", "data-for"} {
		if v, ok := host.Attr(name); !ok || v != "input-1" {
			t.Errorf("%s = %q,%v want input-1", name, v, ok)
		}
	}
	if got := ctl.Option("for"); got != "input-1" {
		t.Errorf("Option(for) = %v", got)
	}

	if err := ctl.SetOption("for", false); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"for", "data-for"} {
		if _, ok := host.Attr(name); ok {
			t.Errorf("%s should be cleared", name)
		}
	}
	if got := ctl.Option("for"); got != false {
		t.Errorf("Option(for) = %v, want false", got)
	}
}

func TestSelectionFallsBackWhenOptionRemoved(t *testing.T) {
	page := setup(t)
	ctl := page.Control("lang")
	if err := ctl.SetSelected("b"); err != nil {
		t.Fatal(err)
	}
	rec := vtest.Record(page.Host("lang"), labelselect.Events...)
	if err := ctl.SetOption("values", []labelselect.Option{{ID: "a", Label: "A"}}); err != nil {
		t.Fatal(err)
	}
	if got := ctl.Selected(); got != "none" {
		t.Errorf("Selected() = %q, want none", got)
	}
	if sel := selectedEntries(page.Host("lang")); !slices.Equal(sel, []string{"none"}) {
		t.Errorf("selected entries = %v, want [none]", sel)
	}
	vtest.ExpectEvents(t, rec, "change", "selectNone", "refreshed")
	if !page.Label("lang").HasClass("selected-none") {
		t.Error("label should carry selected-none")
	}

	rec.Reset()
	if err := ctl.Refresh(); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectEvents(t, rec, "refreshed")
}

func TestUnrecognizedInputIsIgnored(t *testing.T) {
	page := setup(t)
	ctl := page.Control("lang")
	host := page.Host("lang")

	if err := ctl.Configure(labelselect.Partial{"bogus": 1, "theme": "dark"}); err != nil {
		t.Fatal(err)
	}
	if ctl.Option("theme") != "dark" {
		t.Error("recognized key should still apply")
	}

	before := vtest.RenderToString(host)
	v, err := page.Registry.Dispatch(context.Background(), host, labelselect.Command{Name: "explode"})
	if v != nil || err != nil {
		t.Errorf("unknown command = %v, %v; want nil, nil", v, err)
	}
	if err := ctl.SetOption("bogus", 3); err != nil {
		t.Errorf("unknown key set = %v", err)
	}
	if after := vtest.RenderToString(host); after != before {
		t.Error("ignored input should not re-render")
	}

	if v, err := page.Registry.Dispatch(context.Background(), host, nil); v != nil || err != nil {
		t.Errorf("nil call = %v, %v", v, err)
	}
	if _, err := page.Registry.Dispatch(context.Background(), nil, labelselect.Command{Name: "refresh"}); !errors.Is(err, labelselect.ErrInvalidArgument) {
		t.Errorf("nil host err = %v", err)
	}
}

func TestRefreshedEmittedOncePerConfigure(t *testing.T) {
	page := setup(t)
	rec := vtest.Record(page.Host("lang"), labelselect.EventRefreshed)

	if err := page.Control("lang").Configure(labelselect.Partial{"theme": "dark", "width": 200}); err != nil {
		t.Fatal(err)
	}
	if rec.Count("refreshed") != 1 {
		t.Errorf("refreshed count = %d, want 1", rec.Count("refreshed"))
	}
	if got := page.Host("lang").Style("width"); got != "200px" {
		t.Errorf("width = %q, want 200px", got)
	}
}

func TestSingleDocumentListener(t *testing.T) {
	page := setup(t, "lang", "country", "city")
	if n := page.Doc.ListenerCount("click"); n != 1 {
		t.Errorf("document click listeners = %d, want 1", n)
	}

	page.Container("lang").Click()
	page.Registry.Close()
	if n := page.Doc.ListenerCount("click"); n != 0 {
		t.Errorf("after Close = %d, want 0", n)
	}
	page.Outside.Click()
	if !page.Control("lang").IsOpen() {
		t.Error("without the document listener an outside click does nothing")
	}

	if err := page.Control("country").Refresh(); err != nil {
		t.Fatal(err)
	}
	if n := page.Doc.ListenerCount("click"); n != 1 {
		t.Errorf("after a call on a known host = %d, want 1", n)
	}
	page.Outside.Click()
	if page.Control("lang").IsOpen() {
		t.Error("outside click should fold lang once the listener is back")
	}
}

func TestForgetAndDetachedHosts(t *testing.T) {
	page := setup(t, "lang", "country")
	page.Container("lang").Click()

	page.Host("lang").Remove()
	page.Container("country").Click()
	if !page.Control("country").IsOpen() {
		t.Fatal("country should be open")
	}

	page.Registry.Forget(page.Host("country"))
	if page.Registry.Has(page.Host("country")) {
		t.Error("Forget should drop state")
	}
	if hosts := page.Registry.Hosts(); len(hosts) != 1 || hosts[0] != page.Host("lang") {
		t.Errorf("Hosts = %v", hosts)
	}
}

func TestForgetThenReattach(t *testing.T) {
	page := setup(t)
	host := page.Host("lang")

	page.Registry.Forget(host)
	if err := page.Control("lang").Configure(labelselect.Partial{"values": abValues}); err != nil {
		t.Fatal(err)
	}

	rec := vtest.Record(host, "refreshed")
	host.Click()
	vtest.ExpectEvents(t, rec, "refreshed")

	page.Registry.Forget(host)
	rec.Reset()
	host.Click()
	vtest.ExpectEvents(t, rec)
	if page.Registry.Has(host) {
		t.Error("a click on a forgotten host should not attach it again")
	}
}

func TestMiddlewareAndEmitHook(t *testing.T) {
	var calls []string
	var emitted []string
	trace := func(name string) labelselect.Middleware {
		return func(next labelselect.Handler) labelselect.Handler {
			return func(ctx context.Context, host *dom.Element, call labelselect.Call) (any, error) {
				calls = append(calls, name+":"+call.Kind())
				return next(ctx, host, call)
			}
		}
	}
	page := vtest.NewPageWith(t, []labelselect.RegistryOption{
		labelselect.WithMiddleware(trace("outer"), trace("inner")),
		labelselect.WithEmitHook(func(host *dom.Element, event string) {
			id, _ := host.Attr("id")
			emitted = append(emitted, id+":"+event)
		}),
	}, "lang")

	ctl := page.Control("lang")
	if err := ctl.Configure(labelselect.Partial{"values": abValues}); err != nil {
		t.Fatal(err)
	}
	if err := ctl.SetSelected("a"); err != nil {
		t.Fatal(err)
	}

	wantCalls := []string{
		"outer:configure", "inner:configure",
		"outer:setSelected", "inner:setSelected",
		"outer:replaceLabel", "inner:replaceLabel",
	}
	if !slices.Equal(calls, wantCalls) {
		t.Errorf("calls = %v, want %v", calls, wantCalls)
	}
	wantEmitted := []string{"lang:refreshed", "lang:change", "lang:selectOption", "lang:replacedLabel"}
	if !slices.Equal(emitted, wantEmitted) {
		t.Errorf("emitted = %v, want %v", emitted, wantEmitted)
	}
}

func TestNewCall(t *testing.T) {
	tests := []struct {
		name string
		att1 any
		att2 []any
		want labelselect.Call
	}{
		{"partial", labelselect.Partial{"theme": "x"}, nil, labelselect.Configure{Partial: labelselect.Partial{"theme": "x"}}},
		{"getter", "theme", nil, labelselect.GetOption{Key: "theme"}},
		{"getter with nil", "theme", []any{nil}, labelselect.GetOption{Key: "theme"}},
		{"setter", "width", []any{"3em"}, labelselect.SetOption{Key: "width", Value: "3em"}},
		{"command", "refresh", nil, labelselect.Command{Name: "refresh"}},
		{"command with arg", "setSelected", []any{"b"}, labelselect.Command{Name: "setSelected", Arg: "b"}},
		{"unknown shape", 42, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labelselect.NewCall(tt.att1, tt.att2...)
			if cfg, ok := tt.want.(labelselect.Configure); ok {
				c, ok := got.(labelselect.Configure)
				if !ok || c.Partial["theme"] != cfg.Partial["theme"] {
					t.Errorf("NewCall = %#v, want %#v", got, tt.want)
				}
				return
			}
			if got != tt.want {
				t.Errorf("NewCall = %#v, want %#v", got, tt.want)
			}
		})
	}

	m := labelselect.NewCall(map[string]any{"theme": "x"})
	if _, ok := m.(labelselect.Configure); !ok {
		t.Errorf("map should configure, got %#v", m)
	}
	if k := (labelselect.Command{Name: "nope"}).Kind(); k != "unknown" {
		t.Errorf("Kind = %q, want unknown", k)
	}
}
