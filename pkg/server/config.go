package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/labelselect/internal/config"
)

// ServerConfig holds server settings.
type ServerConfig struct {
	// Address is the listen address (default: ":3000").
	Address string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the WebSocket Origin header.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// ReadTimeout closes a connection that stays silent this long.
	ReadTimeout time.Duration

	// WriteTimeout bounds each WebSocket write.
	WriteTimeout time.Duration

	// ReadHeaderTimeout bounds reading HTTP request headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration

	// MaxMessageSize limits incoming WebSocket messages, in bytes.
	MaxMessageSize int64

	// Metrics instruments every page and serves MetricsPath.
	Metrics bool

	// MetricsPath is the Prometheus endpoint (default: "/metrics").
	MetricsPath string

	// Tracing wraps every control call in an OpenTelemetry span.
	Tracing bool
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           config.DefaultAddr,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MaxMessageSize:    64 * 1024,
		Metrics:           true,
		MetricsPath:       config.DefaultMetricsPath,
		Tracing:           true,
	}
}

// FromPage derives server settings from a page file.
func FromPage(page *config.Config) *ServerConfig {
	c := DefaultServerConfig()
	if page == nil {
		return c
	}
	c.Address = page.Server.Addr
	c.Metrics = page.MetricsEnabled()
	c.MetricsPath = page.Metrics.Path
	return c
}

func (c *ServerConfig) withDefaults() *ServerConfig {
	out := *c
	d := DefaultServerConfig()
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.MetricsPath == "" {
		out.MetricsPath = d.MetricsPath
	}
	return &out
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the Host header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
