package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/labelselect/pkg/dom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Styles contains inline CSS blocks.
	Styles []string

	// Scripts contains inline script blocks, written at the end of body.
	Scripts []string

	// Body is the document body; its children become the page content.
	Body *dom.Element
}

// RenderPage writes a complete HTML document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang))
	buf.WriteString("<meta charset=\"utf-8\">\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	if page.Title != "" {
		fmt.Fprintf(&buf, "<title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, css := range page.Styles {
		fmt.Fprintf(&buf, "<style>%s</style>\n", css)
	}
	buf.WriteString("</head>\n")

	if page.Body != nil {
		if err := r.RenderToWriter(&buf, page.Body); err != nil {
			return err
		}
	} else {
		buf.WriteString("<body></body>")
	}
	buf.WriteString("\n")

	html := buf.String()
	if len(page.Scripts) > 0 {
		var scripts strings.Builder
		for _, js := range page.Scripts {
			fmt.Fprintf(&scripts, "<script>%s</script>\n", js)
		}
		if i := strings.LastIndex(html, "</body>"); i >= 0 {
			html = html[:i] + scripts.String() + html[i:]
		} else {
			html += scripts.String()
		}
	}
	html += "</html>\n"

	_, err := io.WriteString(w, html)
	return err
}
