package labelselect

import (
	"log/slog"
	"strconv"

	"github.com/vango-dev/labelselect/pkg/dom"
)

// EmitHook observes every semantic event a control emits.
type EmitHook func(host *dom.Element, event string)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMiddleware wraps Dispatch. The first middleware is the outermost.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(r *Registry) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithEmitHook registers a hook called after each semantic event is
// dispatched on its element.
func WithEmitHook(h EmitHook) RegistryOption {
	return func(r *Registry) {
		if h != nil {
			r.hooks = append(r.hooks, h)
		}
	}
}

// Registry holds the per-host state of every control in one document and the
// single document-level outside-click listener.
type Registry struct {
	doc        *dom.Document
	logger     *slog.Logger
	middleware []Middleware
	hooks      []EmitHook
	handler    Handler

	instances map[*dom.Element]*instance
	order     []*dom.Element

	docListener dom.ListenerID
	wired       bool
}

// instance is the side-table entry of one host.
type instance struct {
	host   *dom.Element
	config Config

	// selected is "" until the first refresh creates the selection state.
	selected string

	// container is the rendered .labelSelect element, nil before the first
	// refresh and after replaceLabel.
	container *dom.Element

	// hostListener is the host click listener installed on attach.
	hostListener dom.ListenerID
}

// NewRegistry creates a registry for doc.
func NewRegistry(doc *dom.Document, opts ...RegistryOption) *Registry {
	r := &Registry{
		doc:       doc,
		logger:    slog.Default().With("component", "labelselect"),
		instances: make(map[*dom.Element]*instance),
	}
	for _, opt := range opts {
		opt(r)
	}

	h := Handler(r.dispatch)
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](h)
	}
	r.handler = h
	return r
}

// Document returns the document the registry serves.
func (r *Registry) Document() *dom.Document {
	return r.doc
}

// Hosts returns every host with state, in attach order.
func (r *Registry) Hosts() []*dom.Element {
	out := make([]*dom.Element, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether host has been attached.
func (r *Registry) Has(host *dom.Element) bool {
	_, ok := r.instances[host]
	return ok
}

// Forget drops host's state and its host click listener. Listeners inside the
// rendered container stay until the next refresh replaces them.
func (r *Registry) Forget(host *dom.Element) {
	inst, ok := r.instances[host]
	if !ok {
		return
	}
	host.Off(inst.hostListener)
	delete(r.instances, host)
	for i, h := range r.order {
		if h == host {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
}

// attach returns host's state, creating it with defaults on first use.
func (r *Registry) attach(host *dom.Element) *instance {
	if !r.wired {
		r.docListener = r.doc.On("click", func(e *dom.Event) { r.onDocumentClick(e) })
		r.wired = true
	}
	if inst, ok := r.instances[host]; ok {
		return inst
	}

	width := strconv.FormatFloat(host.Width(), 'f', -1, 64) + "px"
	inst := &instance{
		host:   host,
		config: DefaultConfig(width),
	}
	r.instances[host] = inst
	r.order = append(r.order, host)

	inst.hostListener = host.On("click", func(e *dom.Event) { r.onHostClick(inst, e) })

	r.logger.Debug("attached", "host", host.HID(), "width", width)
	return inst
}

// openInstances returns the connected controls whose list is unfolded.
func (r *Registry) openInstances() []*instance {
	var open []*instance
	for _, host := range r.order {
		inst := r.instances[host]
		if inst.isOpen() && host.IsConnected() {
			open = append(open, inst)
		}
	}
	return open
}

func (inst *instance) isOpen() bool {
	return inst.container != nil && inst.container.HasClass(classUnfolded)
}

// selection returns the current selection, "none" before the first refresh.
func (inst *instance) selection() string {
	if inst.selected == "" {
		return NoneID
	}
	return inst.selected
}

// IsOpen reports whether host's list is currently unfolded.
func (r *Registry) IsOpen(host *dom.Element) bool {
	inst, ok := r.instances[host]
	return ok && inst.isOpen()
}

// Close removes the document-level listener. Hosts keep their state and
// their own listeners. The next call on any host re-installs the document
// listener.
func (r *Registry) Close() {
	if !r.wired {
		return
	}
	r.doc.Off(r.docListener)
	r.wired = false
}
