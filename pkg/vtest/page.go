package vtest

import (
	"testing"

	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/labelselect"
	"github.com/vango-dev/labelselect/pkg/vdom"
)

// Page is a document with named <label> hosts and a registry.
type Page struct {
	Doc      *dom.Document
	Registry *labelselect.Registry
	Outside  *dom.Element

	hosts map[string]*dom.Element
}

// NewPage creates a page whose hosts are <label id="..." style="width:
// 120px"> elements, plus an unrelated paragraph for outside clicks.
func NewPage(t testing.TB, ids ...string) *Page {
	t.Helper()
	return NewPageWith(t, nil, ids...)
}

// NewPageWith is NewPage with registry options.
func NewPageWith(t testing.TB, opts []labelselect.RegistryOption, ids ...string) *Page {
	t.Helper()
	doc := dom.NewDocument()
	p := &Page{
		Doc:   doc,
		hosts: make(map[string]*dom.Element, len(ids)),
	}
	for _, id := range ids {
		host := doc.MountInto(doc.Body(), vdom.Label(vdom.ID(id), vdom.StyleAttr("width: 120px")))[0]
		p.hosts[id] = host
	}
	p.Outside = doc.MountInto(doc.Body(), vdom.P(vdom.Text("outside")))[0]
	p.Registry = labelselect.NewRegistry(doc, opts...)
	return p
}

// Host returns the host with the given id.
func (p *Page) Host(id string) *dom.Element {
	return p.hosts[id]
}

// Control returns the typed API for the host with the given id.
func (p *Page) Control(id string) *labelselect.Control {
	return p.Registry.Control(p.hosts[id])
}

// Entry returns host's rendered entry with the given data-id, or nil.
func (p *Page) Entry(hostID, entryID string) *dom.Element {
	matches := p.hosts[hostID].FindByAttr("data-id", entryID)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Container returns host's rendered .labelSelect element, or nil.
func (p *Page) Container(hostID string) *dom.Element {
	matches := p.hosts[hostID].FindByClass("labelSelect")
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Label returns host's rendered label span, or nil.
func (p *Page) Label(hostID string) *dom.Element {
	c := p.Container(hostID)
	if c == nil {
		return nil
	}
	return c.ChildByTag("span")
}
