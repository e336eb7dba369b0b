package dom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/labelselect/pkg/vdom"
)

// Document owns a tree rooted at a <body> element plus document-level
// listeners.
type Document struct {
	body      *Element
	hidSeq    uint64
	lidSeq    ListenerID
	listeners map[string][]*listener
	measure   Measurer
}

// Option configures a Document.
type Option func(*Document)

// WithMeasurer sets the geometry measurer.
func WithMeasurer(m Measurer) Option {
	return func(d *Document) {
		if m != nil {
			d.measure = m
		}
	}
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		listeners: make(map[string][]*listener),
		measure:   InlineMeasurer,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.body = d.CreateElement("body")
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

func (d *Document) newNode(kind NodeKind) *Element {
	d.hidSeq++
	return &Element{
		Kind: kind,
		hid:  fmt.Sprintf("h%d", d.hidSeq),
		doc:  d,
	}
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Element {
	el := d.newNode(KindElement)
	el.Tag = strings.ToLower(tag)
	return el
}

// CreateText creates a detached text node.
func (d *Document) CreateText(s string) *Element {
	el := d.newNode(KindText)
	el.Text = s
	return el
}

// CreateRaw creates a detached node holding trusted markup.
func (d *Document) CreateRaw(markup string) *Element {
	el := d.newNode(KindRaw)
	el.Text = markup
	return el
}

// On registers a document-level listener. It runs after every bubbling event
// whose target is connected and whose propagation was not stopped.
func (d *Document) On(typ string, fn Handler) ListenerID {
	d.lidSeq++
	d.listeners[typ] = append(d.listeners[typ], &listener{id: d.lidSeq, fn: fn})
	return d.lidSeq
}

// Off removes a document-level listener.
func (d *Document) Off(id ListenerID) bool {
	for typ, ls := range d.listeners {
		if rest, ok := removeListener(ls, id); ok {
			d.listeners[typ] = rest
			return true
		}
	}
	return false
}

// ListenerCount returns the number of document-level listeners for typ.
func (d *Document) ListenerCount(typ string) int {
	return len(d.listeners[typ])
}

// Measure returns el's box as computed by the document's measurer.
func (d *Document) Measure(el *Element) Rect {
	return d.measure(el)
}

// ElementByHID finds a connected element by its handle id.
func (d *Document) ElementByHID(hid string) *Element {
	var found *Element
	d.body.walk(func(el *Element) bool {
		if el.hid == hid {
			found = el
			return false
		}
		return true
	})
	return found
}

// ElementByID finds a connected element by its id attribute.
func (d *Document) ElementByID(id string) *Element {
	matches := d.body.Find(func(el *Element) bool {
		v, ok := el.Attr("id")
		return ok && v == id
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Mount materializes a VNode tree. Fragments and components are flattened,
// so the result may hold zero or more top-level nodes.
func (d *Document) Mount(v *vdom.VNode) []*Element {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case vdom.KindElement:
		return []*Element{d.mountElement(v)}
	case vdom.KindText:
		return []*Element{d.CreateText(v.Text)}
	case vdom.KindRaw:
		return []*Element{d.CreateRaw(v.Text)}
	case vdom.KindFragment:
		var out []*Element
		for _, c := range v.Children {
			out = append(out, d.Mount(c)...)
		}
		return out
	case vdom.KindComponent:
		if v.Comp == nil {
			return nil
		}
		return d.Mount(v.Comp.Render())
	default:
		return nil
	}
}

// MountInto mounts v and appends the result to parent.
func (d *Document) MountInto(parent *Element, v *vdom.VNode) []*Element {
	nodes := d.Mount(v)
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nodes
}

func (d *Document) mountElement(v *vdom.VNode) *Element {
	el := d.CreateElement(v.Tag)

	keys := make([]string, 0, len(v.Props))
	for k := range v.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		val := v.Props[k]
		if strings.HasPrefix(k, "on") {
			if h := asHandler(val); h != nil {
				el.On(k[2:], h)
				continue
			}
		}
		switch x := val.(type) {
		case nil:
		case bool:
			if x {
				el.SetAttr(k, "")
			}
		case string:
			el.SetAttr(k, x)
		default:
			el.SetAttr(k, fmt.Sprint(x))
		}
	}

	for _, c := range v.Children {
		for _, n := range d.Mount(c) {
			el.AppendChild(n)
		}
	}
	return el
}

func asHandler(v any) Handler {
	switch fn := v.(type) {
	case Handler:
		return fn
	case func(*Event):
		return fn
	case func():
		return func(*Event) { fn() }
	default:
		return nil
	}
}
