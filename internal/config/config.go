package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/labelselect/internal/errors"
	"github.com/vango-dev/labelselect/pkg/labelselect"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the default listen address of the demo server.
	DefaultAddr = ":3000"

	// DefaultTitle is the page title used when none is configured.
	DefaultTitle = "labelselect"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultControlWidth is the host width when a control sets none.
	DefaultControlWidth = "160px"
)

// FileNames are the names Find looks for, in order.
var FileNames = []string{"labelselect.yaml", "labelselect.yml", "labelselect.json"}

// Config is a page description.
type Config struct {
	// Title is the document title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Lang is the html lang attribute (default: "en").
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`

	// Server contains demo server settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Controls are the label hosts on the page, in document order.
	Controls []Control `json:"controls" yaml:"controls"`

	configPath string
}

// ServerConfig contains demo server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled serves metrics and instruments every page (default: true).
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Path is the metrics endpoint.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Control describes one host element and its initial configuration.
type Control struct {
	// ID is the host's id attribute. Required and unique.
	ID string `json:"id" yaml:"id"`

	// Text is the host's content before the control first renders.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Width is the host's inline width, which the control measures on
	// first attach (default: DefaultControlWidth).
	Width string `json:"width,omitempty" yaml:"width,omitempty"`

	// Config is applied with a single configure call.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	enabled := true
	return &Config{
		Title: DefaultTitle,
		Lang:  "en",
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Metrics: MetricsConfig{
			Enabled: &enabled,
			Path:    DefaultMetricsPath,
		},
	}
}

// Find returns the first page file present in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New("LS010").
		WithDetail("No page file found in " + dir).
		WithSuggestion("Create " + FileNames[0] + " or pass --config")
}

// Load reads a page file. The format follows the extension: .yaml/.yml or
// .json. The result has defaults applied and is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("LS010").
				WithDetail("No such file: " + path).
				Wrap(err)
		}
		return nil, errors.New("LS010").Wrap(err)
	}

	cfg := New()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, errors.New("LS010").
			WithDetailf("Unsupported extension %q", ext).
			WithSuggestion("Use .yaml, .yml or .json")
	}
	if err != nil {
		return nil, errors.New("LS010").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Metrics.Enabled == nil {
		enabled := true
		c.Metrics.Enabled = &enabled
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	for i := range c.Controls {
		if c.Controls[i].Width == "" {
			c.Controls[i].Width = DefaultControlWidth
		}
	}
}

// Validate checks control ids and every control's configuration.
func (c *Config) Validate() error {
	if len(c.Controls) == 0 {
		return errors.New("LS011").
			WithDetail("No controls defined").
			WithSuggestion("Add at least one entry under controls")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("LS011").
			WithDetailf("metrics.path %q must start with /", c.Metrics.Path)
	}

	seen := make(map[string]bool, len(c.Controls))
	for i, ctl := range c.Controls {
		if ctl.ID == "" {
			return errors.New("LS011").WithDetailf("controls[%d] has no id", i)
		}
		if seen[ctl.ID] {
			return errors.New("LS011").WithDetailf("duplicate control id %q", ctl.ID)
		}
		seen[ctl.ID] = true

		var unknown []string
		for k := range ctl.Config {
			if !labelselect.IsOption(k) {
				unknown = append(unknown, k)
			}
		}
		if len(unknown) > 0 {
			return errors.New("LS011").
				WithDetailf("controls[%d] (%s): unknown keys %v", i, ctl.ID, unknown).
				WithSuggestion("Known keys: " + strings.Join(labelselect.OptionKeys(), ", "))
		}

		candidate := labelselect.DefaultConfig("0px")
		if dropped := candidate.Merge(ctl.Partial()); len(dropped) > 0 {
			return errors.New("LS011").
				WithDetailf("controls[%d] (%s): unusable values for %v", i, ctl.ID, dropped)
		}
		if err := candidate.Validate(); err != nil {
			return errors.New("LS011").
				WithDetail(fmt.Sprintf("controls[%d] (%s)", i, ctl.ID)).
				Wrap(err)
		}
	}
	return nil
}

// MetricsEnabled reports whether metrics are on.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}

// Control returns the control with the given id.
func (c *Config) Control(id string) (Control, bool) {
	for _, ctl := range c.Controls {
		if ctl.ID == id {
			return ctl, true
		}
	}
	return Control{}, false
}

// Partial returns the control's configuration as a labelselect update.
func (ctl Control) Partial() labelselect.Partial {
	p := make(labelselect.Partial, len(ctl.Config))
	for k, v := range ctl.Config {
		p[k] = v
	}
	return p
}

// HostStyle is the inline style of the host element.
func (ctl Control) HostStyle() string {
	if ctl.Width == "" {
		return ""
	}
	return "width: " + ctl.Width
}
