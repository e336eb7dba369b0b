package labelselect

import (
	"context"

	"github.com/vango-dev/labelselect/pkg/dom"
)

// Control binds a Registry to one host and exposes the calls as methods.
type Control struct {
	reg  *Registry
	host *dom.Element
}

// Control returns the typed API for host. It does not attach the host;
// the first method call does.
func (r *Registry) Control(host *dom.Element) *Control {
	return &Control{reg: r, host: host}
}

// Host returns the bound host element.
func (c *Control) Host() *dom.Element { return c.host }

// Configure merges p and refreshes.
func (c *Control) Configure(p Partial) error {
	_, err := c.reg.Dispatch(context.Background(), c.host, Configure{Partial: p})
	return err
}

// Refresh re-renders the control.
func (c *Control) Refresh() error {
	_, err := c.reg.Dispatch(context.Background(), c.host, Command{Name: CmdRefresh})
	return err
}

// Option returns the value of a configuration key.
func (c *Control) Option(key string) any {
	v, _ := c.reg.Dispatch(context.Background(), c.host, GetOption{Key: key})
	return v
}

// SetOption sets one configuration key and refreshes.
func (c *Control) SetOption(key string, value any) error {
	_, err := c.reg.Dispatch(context.Background(), c.host, SetOption{Key: key, Value: value})
	return err
}

// SetSelected selects the rendered entry with the given id.
func (c *Control) SetSelected(id string) error {
	_, err := c.reg.Dispatch(context.Background(), c.host, Command{Name: CmdSetSelected, Arg: id})
	return err
}

// Selected returns the selected id.
func (c *Control) Selected() string {
	v, _ := c.reg.Dispatch(context.Background(), c.host, Command{Name: CmdGetSelected})
	s, _ := v.(string)
	return s
}

// ReplaceLabel collapses the control into the selected entry's markup.
func (c *Control) ReplaceLabel() error {
	_, err := c.reg.Dispatch(context.Background(), c.host, Command{Name: CmdReplaceLabel})
	return err
}

// IsOpen reports whether the list is unfolded.
func (c *Control) IsOpen() bool {
	return c.reg.IsOpen(c.host)
}

// On listens for a semantic event on the host.
func (c *Control) On(event string, fn func()) dom.ListenerID {
	return c.host.On(event, func(*dom.Event) { fn() })
}
