// Package render serializes live dom trees to HTML.
//
// Text is escaped, raw nodes (trusted option markup) are written verbatim,
// and every element that has listeners gets a data-hid attribute plus one
// data-on-<event> marker so a thin client can route clicks back to the
// server-side element:
//
//	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(host)
//
// InnerHTML returns the serialized children of an element, which is how the
// select control copies an entry's markup into its label.
package render
