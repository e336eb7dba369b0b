package dom

import (
	"strconv"
	"strings"
)

// Rect is an element's box, in CSS pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Measurer computes an element's box. Hosts plug in real layout; the default
// only understands inline pixel sizes.
type Measurer func(el *Element) Rect

// InlineMeasurer reads width and height from inline "px" styles and returns
// zero for anything else.
func InlineMeasurer(el *Element) Rect {
	return Rect{
		Width:  parsePx(el.Style("width")),
		Height: parsePx(el.Style("height")),
	}
}

func parsePx(v string) float64 {
	v = strings.TrimSpace(v)
	if !strings.HasSuffix(v, "px") {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return 0
	}
	return f
}
