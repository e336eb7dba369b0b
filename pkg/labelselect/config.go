package labelselect

import (
	"fmt"
	"strconv"
	"strings"
)

// NoneID is the reserved id of the synthetic "no selection" entry.
const NoneID = "none"

// Option is one selectable entry. Label is trusted markup.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Direction is where the list unfolds relative to the label.
type Direction string

const (
	UnfoldDown Direction = "down"
	UnfoldUp   Direction = "up"
)

// Recognized configuration keys.
const (
	KeyReplacedLabelOnSelect = "replacedLabelOnSelect"
	KeyExtraClass            = "extraClass"
	KeyFor                   = "for"
	KeyHighlightSel          = "highlightSel"
	KeyTheme                 = "theme"
	KeyUnfoldDir             = "unfoldDir"
	KeyValues                = "values"
	KeyWidth                 = "width"
)

var optionKeys = []string{
	KeyReplacedLabelOnSelect,
	KeyExtraClass,
	KeyFor,
	KeyHighlightSel,
	KeyTheme,
	KeyUnfoldDir,
	KeyValues,
	KeyWidth,
}

// OptionKeys returns the recognized configuration keys.
func OptionKeys() []string {
	out := make([]string, len(optionKeys))
	copy(out, optionKeys)
	return out
}

// IsOption reports whether key is a recognized configuration key.
func IsOption(key string) bool {
	for _, k := range optionKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Partial is a shallow configuration update keyed by option name.
type Partial map[string]any

// Config is the stored configuration of one control.
type Config struct {
	ReplacedLabelOnSelect bool
	ExtraClass            string
	// For is mirrored into the host's for/data-for attributes; "" unbinds.
	For          string
	HighlightSel bool
	Theme        string
	UnfoldDir    Direction
	Values       []Option
	Width        string
}

// DefaultConfig returns the configuration a host gets on first attach.
func DefaultConfig(width string) Config {
	return Config{
		ReplacedLabelOnSelect: true,
		HighlightSel:          true,
		Theme:                 "white",
		UnfoldDir:             UnfoldDown,
		Values:                []Option{},
		Width:                 width,
	}
}

func (c Config) clone() Config {
	out := c
	out.Values = append([]Option(nil), c.Values...)
	return out
}

// Validate checks the invariants a render relies on.
func (c Config) Validate() error {
	for i, opt := range c.Values {
		if opt.ID == NoneID {
			return reservedIDError(i)
		}
	}
	return nil
}

// Get returns the value stored under key, or nil for unrecognized keys.
// "for" reads back as false when unbound.
func (c Config) Get(key string) any {
	switch key {
	case KeyReplacedLabelOnSelect:
		return c.ReplacedLabelOnSelect
	case KeyExtraClass:
		return c.ExtraClass
	case KeyFor:
		if c.For == "" {
			return false
		}
		return c.For
	case KeyHighlightSel:
		return c.HighlightSel
	case KeyTheme:
		return c.Theme
	case KeyUnfoldDir:
		return string(c.UnfoldDir)
	case KeyValues:
		return append([]Option(nil), c.Values...)
	case KeyWidth:
		return c.Width
	default:
		return nil
	}
}

// Set stores value under key. Unrecognized keys and values that cannot be
// coerced to the key's type are dropped and Set reports false.
func (c *Config) Set(key string, value any) bool {
	switch key {
	case KeyReplacedLabelOnSelect:
		b, ok := toBool(value)
		if ok {
			c.ReplacedLabelOnSelect = b
		}
		return ok
	case KeyHighlightSel:
		b, ok := toBool(value)
		if ok {
			c.HighlightSel = b
		}
		return ok
	case KeyExtraClass:
		s, ok := value.(string)
		if ok {
			c.ExtraClass = s
		}
		return ok
	case KeyTheme:
		s, ok := value.(string)
		if ok {
			c.Theme = s
		}
		return ok
	case KeyUnfoldDir:
		switch v := value.(type) {
		case Direction:
			c.UnfoldDir = v
		case string:
			c.UnfoldDir = Direction(v)
		default:
			return false
		}
		return true
	case KeyFor:
		switch v := value.(type) {
		case nil:
			c.For = ""
		case string:
			c.For = v
		case bool:
			if v {
				return false
			}
			c.For = ""
		default:
			return false
		}
		return true
	case KeyValues:
		opts, ok := toOptions(value)
		if ok {
			c.Values = opts
		}
		return ok
	case KeyWidth:
		w, ok := toLength(value)
		if ok {
			c.Width = w
		}
		return ok
	default:
		return false
	}
}

// Merge applies every recognized key of p and returns the keys that were
// dropped.
func (c *Config) Merge(p Partial) []string {
	var dropped []string
	for k, v := range p {
		if !c.Set(k, v) {
			dropped = append(dropped, k)
		}
	}
	return dropped
}

func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(x)
		return b, err == nil
	default:
		return false, false
	}
}

func toLength(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case int:
		return fmt.Sprintf("%dpx", x), true
	case int64:
		return fmt.Sprintf("%dpx", x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64) + "px", true
	default:
		return "", false
	}
}

// toOptions accepts []Option, []map[string]any and []any holding either,
// which covers Go callers as well as decoded JSON and YAML.
func toOptions(v any) ([]Option, bool) {
	switch x := v.(type) {
	case []Option:
		return append([]Option{}, x...), true
	case []map[string]any:
		out := make([]Option, 0, len(x))
		for _, m := range x {
			opt, ok := optionFromMap(m)
			if !ok {
				return nil, false
			}
			out = append(out, opt)
		}
		return out, true
	case []any:
		out := make([]Option, 0, len(x))
		for _, item := range x {
			switch it := item.(type) {
			case Option:
				out = append(out, it)
			case map[string]any:
				opt, ok := optionFromMap(it)
				if !ok {
					return nil, false
				}
				out = append(out, opt)
			default:
				return nil, false
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func optionFromMap(m map[string]any) (Option, bool) {
	id, ok := scalarString(m["id"])
	if !ok {
		return Option{}, false
	}
	label, ok := scalarString(m["label"])
	if !ok && m["label"] != nil {
		return Option{}, false
	}
	return Option{ID: id, Label: label}, true
}

// scalarString accepts strings and numbers (YAML decodes `id: 1` as int).
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}
