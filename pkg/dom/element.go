package dom

import (
	"sort"
	"strings"
)

// NodeKind discriminates node types.
type NodeKind uint8

const (
	KindElement NodeKind = iota
	KindText
	KindRaw
)

// StyleProp is one inline style declaration.
type StyleProp struct {
	Name  string
	Value string
}

// Element is a live node. Text and raw nodes use Text and never have
// children, attributes or listeners.
type Element struct {
	Kind NodeKind
	Tag  string
	Text string

	hid       string
	doc       *Document
	parent    *Element
	children  []*Element
	classes   []string
	attrs     map[string]string
	style     []StyleProp
	listeners map[string][]*listener
}

// HID returns the node's document-unique handle id (e.g. "h12").
func (el *Element) HID() string { return el.hid }

// Document returns the owning document.
func (el *Element) Document() *Document { return el.doc }

// Parent returns the parent node, or nil if detached.
func (el *Element) Parent() *Element { return el.parent }

// Children returns a copy of the child list.
func (el *Element) Children() []*Element {
	out := make([]*Element, len(el.children))
	copy(out, el.children)
	return out
}

// ChildCount returns the number of children.
func (el *Element) ChildCount() int { return len(el.children) }

// ChildByTag returns the first direct child element with the given tag.
func (el *Element) ChildByTag(tag string) *Element {
	for _, c := range el.children {
		if c.Kind == KindElement && c.Tag == tag {
			return c
		}
	}
	return nil
}

// IsConnected reports whether el is attached to its document's body.
func (el *Element) IsConnected() bool {
	if el.doc == nil {
		return false
	}
	for n := el; n != nil; n = n.parent {
		if n == el.doc.body {
			return true
		}
	}
	return false
}

// Contains reports whether other is el or one of its descendants.
func (el *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == el {
			return true
		}
	}
	return false
}

// walk visits el and its descendants in document order until fn returns false.
func (el *Element) walk(fn func(*Element) bool) bool {
	if !fn(el) {
		return false
	}
	for _, c := range el.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the descendants of el (el excluded) matching pred, in
// document order.
func (el *Element) Find(pred func(*Element) bool) []*Element {
	var out []*Element
	for _, c := range el.children {
		c.walk(func(n *Element) bool {
			if n.Kind == KindElement && pred(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// FindByClass returns descendants carrying every given class.
func (el *Element) FindByClass(classes ...string) []*Element {
	return el.Find(func(n *Element) bool {
		for _, c := range classes {
			if !n.HasClass(c) {
				return false
			}
		}
		return true
	})
}

// FindByAttr returns descendants whose attribute key equals value.
func (el *Element) FindByAttr(key, value string) []*Element {
	return el.Find(func(n *Element) bool {
		v, ok := n.Attr(key)
		return ok && v == value
	})
}

func (el *Element) detach() {
	if el.parent == nil {
		return
	}
	p := el.parent
	for i, c := range p.children {
		if c == el {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	el.parent = nil
}

// AppendChild moves child to the end of el's children.
func (el *Element) AppendChild(child *Element) {
	child.detach()
	child.parent = el
	el.children = append(el.children, child)
}

// PrependChild moves child to the front of el's children.
func (el *Element) PrependChild(child *Element) {
	child.detach()
	child.parent = el
	el.children = append([]*Element{child}, el.children...)
}

// Remove detaches el from its parent.
func (el *Element) Remove() {
	el.detach()
}

// Empty detaches every child.
func (el *Element) Empty() {
	for _, c := range el.children {
		c.parent = nil
	}
	el.children = nil
}

// SetHTML replaces el's children with a single node of trusted markup.
func (el *Element) SetHTML(markup string) {
	el.Empty()
	if markup == "" {
		return
	}
	el.AppendChild(el.doc.CreateRaw(markup))
}

// SetText replaces el's children with a single text node.
func (el *Element) SetText(s string) {
	el.Empty()
	if s == "" {
		return
	}
	el.AppendChild(el.doc.CreateText(s))
}

// Classes returns a copy of the class list.
func (el *Element) Classes() []string {
	out := make([]string, len(el.classes))
	copy(out, el.classes)
	return out
}

// HasClass reports whether el carries class.
func (el *Element) HasClass(class string) bool {
	for _, c := range el.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds every whitespace-separated class in names not already present.
func (el *Element) AddClass(names ...string) {
	for _, n := range names {
		for _, c := range strings.Fields(n) {
			if !el.HasClass(c) {
				el.classes = append(el.classes, c)
			}
		}
	}
}

// RemoveClass removes every whitespace-separated class in names.
func (el *Element) RemoveClass(names ...string) {
	for _, n := range names {
		for _, c := range strings.Fields(n) {
			for i, have := range el.classes {
				if have == c {
					el.classes = append(el.classes[:i:i], el.classes[i+1:]...)
					break
				}
			}
		}
	}
}

// ToggleClass flips class and reports whether it is now present.
func (el *Element) ToggleClass(class string) bool {
	if el.HasClass(class) {
		el.RemoveClass(class)
		return false
	}
	el.AddClass(class)
	return true
}

// Attr returns the attribute value. "class" and "style" are synthesized
// from the class list and inline style.
func (el *Element) Attr(key string) (string, bool) {
	switch key {
	case "class":
		if len(el.classes) == 0 {
			return "", false
		}
		return strings.Join(el.classes, " "), true
	case "style":
		if len(el.style) == 0 {
			return "", false
		}
		return el.StyleText(), true
	}
	v, ok := el.attrs[key]
	return v, ok
}

// SetAttr sets an attribute. "class" replaces the class list and "style"
// replaces the inline style.
func (el *Element) SetAttr(key, value string) {
	switch key {
	case "class":
		el.classes = nil
		el.AddClass(value)
		return
	case "style":
		el.style = nil
		for _, decl := range strings.Split(value, ";") {
			name, val, ok := strings.Cut(decl, ":")
			if ok {
				el.SetStyle(strings.TrimSpace(name), strings.TrimSpace(val))
			}
		}
		return
	}
	if el.attrs == nil {
		el.attrs = make(map[string]string)
	}
	el.attrs[key] = value
}

// RemoveAttr deletes an attribute.
func (el *Element) RemoveAttr(key string) {
	switch key {
	case "class":
		el.classes = nil
	case "style":
		el.style = nil
	default:
		delete(el.attrs, key)
	}
}

// AttrNames returns the plain attribute names (class and style excluded),
// sorted.
func (el *Element) AttrNames() []string {
	names := make([]string, 0, len(el.attrs))
	for k := range el.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Style returns an inline style value, or "".
func (el *Element) Style(name string) string {
	for _, p := range el.style {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// SetStyle sets an inline style property; an empty value removes it.
func (el *Element) SetStyle(name, value string) {
	for i, p := range el.style {
		if p.Name == name {
			if value == "" {
				el.style = append(el.style[:i:i], el.style[i+1:]...)
			} else {
				el.style[i].Value = value
			}
			return
		}
	}
	if value != "" {
		el.style = append(el.style, StyleProp{Name: name, Value: value})
	}
}

// StyleProps returns the inline style declarations in insertion order.
func (el *Element) StyleProps() []StyleProp {
	out := make([]StyleProp, len(el.style))
	copy(out, el.style)
	return out
}

// StyleText serializes the inline style ("a: b; c: d").
func (el *Element) StyleText() string {
	parts := make([]string, len(el.style))
	for i, p := range el.style {
		parts[i] = p.Name + ": " + p.Value
	}
	return strings.Join(parts, "; ")
}

// Width returns el's measured width.
func (el *Element) Width() float64 {
	if el.doc == nil {
		return 0
	}
	return el.doc.Measure(el).Width
}

// On registers a listener for typ on el.
func (el *Element) On(typ string, fn Handler) ListenerID {
	if el.listeners == nil {
		el.listeners = make(map[string][]*listener)
	}
	el.doc.lidSeq++
	id := el.doc.lidSeq
	el.listeners[typ] = append(el.listeners[typ], &listener{id: id, fn: fn})
	return id
}

// Off removes a listener registered with On.
func (el *Element) Off(id ListenerID) bool {
	for typ, ls := range el.listeners {
		if rest, ok := removeListener(ls, id); ok {
			el.listeners[typ] = rest
			return true
		}
	}
	return false
}

// ListenerTypes returns the event types el listens to, sorted.
func (el *Element) ListenerTypes() []string {
	types := make([]string, 0, len(el.listeners))
	for typ, ls := range el.listeners {
		if len(ls) > 0 {
			types = append(types, typ)
		}
	}
	sort.Strings(types)
	return types
}

// Dispatch delivers e to el and, if it bubbles, to el's ancestors and then
// the document. The propagation path is fixed before any listener runs.
func (el *Element) Dispatch(e *Event) {
	e.Target = el
	path := []*Element{el}
	if e.Bubbles {
		for p := el.parent; p != nil; p = p.parent {
			path = append(path, p)
		}
	}
	connected := el.IsConnected()

	for _, node := range path {
		e.CurrentTarget = node
		fire(node.listeners[e.Type], e)
		if e.stopped {
			return
		}
	}

	if e.Bubbles && connected {
		e.CurrentTarget = nil
		fire(el.doc.listeners[e.Type], e)
	}
}

// Click dispatches a bubbling click on el.
func (el *Element) Click() {
	el.Dispatch(NewEvent("click"))
}

// Trigger dispatches a bubbling event of type typ on el.
func (el *Element) Trigger(typ string) {
	el.Dispatch(NewEvent(typ))
}
