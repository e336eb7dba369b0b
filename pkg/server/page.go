package server

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/vango-dev/labelselect/internal/config"
	lserrors "github.com/vango-dev/labelselect/internal/errors"
	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/labelselect"
	"github.com/vango-dev/labelselect/pkg/render"
	"github.com/vango-dev/labelselect/pkg/vdom"
)

// appID is the id of the element the client replaces on every render.
const appID = "app"

// Page is one live document built from a page file.
type Page struct {
	ID       string
	Doc      *dom.Document
	Registry *labelselect.Registry

	config *config.Config
	app    *dom.Element
	hosts  map[string]*dom.Element
	events []EmittedEvent
}

// NewPage builds the document for cfg and applies every control's initial
// configuration. opts are passed to the registry after the page's own
// event collector.
func NewPage(cfg *config.Config, opts ...labelselect.RegistryOption) (*Page, error) {
	p := &Page{
		ID:     uuid.NewString(),
		Doc:    dom.NewDocument(),
		config: cfg,
		hosts:  make(map[string]*dom.Element, len(cfg.Controls)),
	}

	fields := vdom.Range(cfg.Controls, func(c config.Control, _ int) *vdom.VNode {
		return vdom.Div(
			vdom.Class("field"),
			vdom.Label(
				vdom.ID(c.ID),
				hostStyle(c),
				vdom.If(c.Text != "", vdom.Text(c.Text)),
			),
		)
	})
	p.app = p.Doc.MountInto(p.Doc.Body(), vdom.Main(
		vdom.ID(appID),
		vdom.H1(cfg.Title),
		fields,
	))[0]

	for _, c := range cfg.Controls {
		p.hosts[c.ID] = p.Doc.ElementByID(c.ID)
	}

	all := append([]labelselect.RegistryOption{labelselect.WithEmitHook(p.collect)}, opts...)
	p.Registry = labelselect.NewRegistry(p.Doc, all...)

	for _, c := range cfg.Controls {
		if err := p.Registry.Control(p.hosts[c.ID]).Configure(c.Partial()); err != nil {
			return nil, lserrors.New("LS011").WithDetailf("control %q", c.ID).Wrap(err)
		}
	}
	return p, nil
}

func hostStyle(c config.Control) vdom.Attr {
	if s := c.HostStyle(); s != "" {
		return vdom.StyleAttr(s)
	}
	return vdom.Attr{}
}

func (p *Page) collect(host *dom.Element, name string) {
	id, _ := host.Attr("id")
	p.events = append(p.events, EmittedEvent{Host: id, Name: name})
}

// Drain returns and forgets the events emitted since the last Drain.
func (p *Page) Drain() []EmittedEvent {
	out := p.events
	p.events = nil
	if out == nil {
		out = []EmittedEvent{}
	}
	return out
}

// Host returns the host element with the given id.
func (p *Page) Host(id string) *dom.Element {
	return p.hosts[id]
}

// Config returns the page file the page was built from.
func (p *Page) Config() *config.Config {
	return p.config
}

// Click dispatches a bubbling click on the element with the given handle.
func (p *Page) Click(hid string) error {
	el := p.Doc.ElementByHID(hid)
	if el == nil {
		return lserrors.New("LS021").WithDetailf("no element with handle %q", hid)
	}
	el.Click()
	return nil
}

// Call runs a loosely typed call against the host with the given id.
func (p *Page) Call(ctx context.Context, hostID string, args []any) (any, error) {
	host := p.hosts[hostID]
	if host == nil {
		return nil, lserrors.New("LS021").WithDetailf("no control %q", hostID)
	}
	if len(args) == 0 {
		return nil, lserrors.New("LS020").WithDetail("call without arguments")
	}
	call := labelselect.NewCall(args[0], args[1:]...)
	if call == nil {
		return nil, lserrors.New("LS020").WithDetailf("cannot interpret %T as a call", args[0])
	}
	return p.Registry.Dispatch(ctx, host, call)
}

// AppHTML renders the page's app element with handle markers, for the client.
func (p *Page) AppHTML() string {
	return render.OuterHTML(p.app)
}

// Document renders the complete HTML document. Static output omits handle
// markers and the client script.
func (p *Page) Document(pretty, static bool) (string, error) {
	r := render.NewRenderer(render.RendererConfig{Pretty: pretty, OmitHIDs: static})
	data := render.PageData{
		Title:  p.config.Title,
		Lang:   p.config.Lang,
		Styles: []string{pageCSS},
		Body:   p.Doc.Body(),
	}
	if !static {
		data.Scripts = []string{clientJS}
	}
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
