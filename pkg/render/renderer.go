package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Inline elements (span, b, ...) stay on
	// one line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// OmitHIDs drops the data-hid / data-on-* markers, for static output.
	OmitHIDs bool
}

// Renderer serializes dom trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders el and its subtree.
func (r *Renderer) RenderToString(el *dom.Element) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, el); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams el and its subtree to w.
func (r *Renderer) RenderToWriter(w io.Writer, el *dom.Element) error {
	return r.renderNode(w, el, 0)
}

// RenderChildren renders el's children without el itself.
func (r *Renderer) RenderChildren(w io.Writer, el *dom.Element) error {
	for _, c := range el.Children() {
		if err := r.renderNode(w, c, 0); err != nil {
			return err
		}
	}
	return nil
}

// InnerHTML returns the compact serialization of el's children, without
// handle markers.
func InnerHTML(el *dom.Element) string {
	if el == nil {
		return ""
	}
	var buf bytes.Buffer
	r := NewRenderer(RendererConfig{OmitHIDs: true})
	if err := r.RenderChildren(&buf, el); err != nil {
		return ""
	}
	return buf.String()
}

// OuterHTML returns the compact serialization of el, handle markers included.
func OuterHTML(el *dom.Element) string {
	if el == nil {
		return ""
	}
	html, err := NewRenderer(RendererConfig{}).RenderToString(el)
	if err != nil {
		return ""
	}
	return html
}

func (r *Renderer) renderNode(w io.Writer, el *dom.Element, depth int) error {
	if el == nil {
		return nil
	}

	switch el.Kind {
	case dom.KindElement:
		return r.renderElement(w, el, depth)
	case dom.KindText:
		_, err := io.WriteString(w, escapeHTML(el.Text))
		return err
	case dom.KindRaw:
		_, err := io.WriteString(w, el.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", el.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, el *dom.Element, depth int) error {
	tag := el.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, el); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	children := el.Children()
	block := r.config.Pretty && len(children) > 0 && !isInlineElement(tag) && hasElementChild(children)
	if block {
		io.WriteString(w, "\n")
	}

	for _, c := range children {
		childDepth := depth + 1
		if !block {
			childDepth = 0
		}
		if block && c.Kind != dom.KindElement {
			r.writeIndent(w, depth+1)
		}
		if err := r.renderNodeInline(w, c, childDepth, block); err != nil {
			return err
		}
		if block && c.Kind != dom.KindElement {
			io.WriteString(w, "\n")
		}
	}

	if block {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty && depth > 0 {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderNodeInline renders a child. Inside inline content, pretty printing is
// suspended so markup is not altered by whitespace.
func (r *Renderer) renderNodeInline(w io.Writer, el *dom.Element, depth int, block bool) error {
	if block {
		return r.renderNode(w, el, depth)
	}
	saved := r.config.Pretty
	r.config.Pretty = false
	err := r.renderNode(w, el, 0)
	r.config.Pretty = saved
	return err
}

func (r *Renderer) renderAttributes(w io.Writer, el *dom.Element) error {
	if class, ok := el.Attr("class"); ok {
		if _, err := fmt.Fprintf(w, ` class="%s"`, escapeAttr(class)); err != nil {
			return err
		}
	}

	for _, key := range el.AttrNames() {
		value, _ := el.Attr(key)
		if isBooleanAttr(key) {
			if _, err := fmt.Fprintf(w, " %s", key); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(value)); err != nil {
			return err
		}
	}

	if style, ok := el.Attr("style"); ok {
		if _, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(style)); err != nil {
			return err
		}
	}

	if r.config.OmitHIDs {
		return nil
	}
	types := el.ListenerTypes()
	if len(types) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, ` data-hid="%s"`, el.HID()); err != nil {
		return err
	}
	for _, typ := range types {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, strings.ToLower(typ)); err != nil {
			return err
		}
	}
	return nil
}

func hasElementChild(children []*dom.Element) bool {
	for _, c := range children {
		if c.Kind == dom.KindElement {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
