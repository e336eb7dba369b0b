package labelselect

import (
	"context"
	"fmt"

	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/render"
)

// Commands.
const (
	CmdRefresh      = "refresh"
	CmdSetSelected  = "setSelected"
	CmdGetSelected  = "getSelected"
	CmdReplaceLabel = "replaceLabel"
)

// Call is one request to a control: Configure, Command, GetOption or
// SetOption.
type Call interface {
	// Kind names the call for logs and metrics.
	Kind() string
	isCall()
}

// Configure merges a partial configuration and refreshes.
type Configure struct {
	Partial Partial
}

// Command runs a named command. Arg is only used by setSelected.
type Command struct {
	Name string
	Arg  any
}

// GetOption reads one configuration value.
type GetOption struct {
	Key string
}

// SetOption writes one configuration value and refreshes. A nil Value reads
// instead.
type SetOption struct {
	Key   string
	Value any
}

func (Configure) Kind() string { return "configure" }
func (GetOption) Kind() string { return "getOption" }
func (SetOption) Kind() string { return "setOption" }

func (c Command) Kind() string {
	switch c.Name {
	case CmdRefresh, CmdSetSelected, CmdGetSelected, CmdReplaceLabel:
		return c.Name
	default:
		return "unknown"
	}
}

func (Configure) isCall() {}
func (Command) isCall()   {}
func (GetOption) isCall() {}
func (SetOption) isCall() {}

// NewCall classifies loosely typed arguments (decoded JSON, YAML scripts):
// a map configures, a recognized key with a non-nil second argument sets,
// a recognized key alone gets, and any other string is a command. Anything
// else yields nil.
func NewCall(att1 any, att2 ...any) Call {
	var arg any
	if len(att2) > 0 {
		arg = att2[0]
	}
	switch v := att1.(type) {
	case Partial:
		return Configure{Partial: v}
	case map[string]any:
		return Configure{Partial: Partial(v)}
	case string:
		if IsOption(v) {
			if arg != nil {
				return SetOption{Key: v, Value: arg}
			}
			return GetOption{Key: v}
		}
		return Command{Name: v, Arg: arg}
	default:
		return nil
	}
}

// Handler executes a call against a host.
type Handler func(ctx context.Context, host *dom.Element, call Call) (any, error)

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Dispatch is the single entry point of the control. The first call for a
// host attaches it with default configuration. Getters return their value;
// every other call returns nil. Unrecognized commands and a nil call are
// ignored.
func (r *Registry) Dispatch(ctx context.Context, host *dom.Element, call Call) (any, error) {
	if host == nil {
		return nil, fmt.Errorf("%w: nil host", ErrInvalidArgument)
	}
	if call == nil {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return r.handler(ctx, host, call)
}

func (r *Registry) dispatch(_ context.Context, host *dom.Element, call Call) (any, error) {
	inst := r.attach(host)

	switch c := call.(type) {
	case Configure:
		return nil, r.configure(inst, c.Partial)

	case GetOption:
		return inst.config.Get(c.Key), nil

	case SetOption:
		if !IsOption(c.Key) {
			return nil, nil
		}
		if c.Value == nil {
			return inst.config.Get(c.Key), nil
		}
		return nil, r.configure(inst, Partial{c.Key: c.Value})

	case Command:
		switch c.Name {
		case CmdRefresh:
			return nil, r.refresh(inst)
		case CmdGetSelected:
			return inst.selection(), nil
		case CmdSetSelected:
			return nil, r.setSelected(inst, c.Arg)
		case CmdReplaceLabel:
			r.replaceLabel(inst)
			return nil, nil
		default:
			r.logger.Debug("ignored unknown command", "host", host.HID(), "command", c.Name)
		}
	}
	return nil, nil
}

// configure validates the merged candidate before storing it, so a rejected
// update leaves the previous configuration in place.
func (r *Registry) configure(inst *instance, p Partial) error {
	candidate := inst.config.clone()
	if dropped := candidate.Merge(p); len(dropped) > 0 {
		r.logger.Debug("ignored configuration keys", "host", inst.host.HID(), "keys", dropped)
	}
	if err := candidate.Validate(); err != nil {
		return err
	}
	inst.config = candidate
	return r.refresh(inst)
}

// setSelected replays an entry click without bubbling, so the fold state is
// left alone.
func (r *Registry) setSelected(inst *instance, arg any) error {
	id, ok := arg.(string)
	if !ok || id == "" {
		return notStringError(arg)
	}
	li := inst.renderedEntry(id)
	if li == nil {
		return unknownEntryError(id)
	}
	li.Dispatch(&dom.Event{Type: "click"})
	return nil
}

// replaceLabel collapses the control into the selected entry's markup. The
// host becomes interactive again on the next refresh.
func (r *Registry) replaceLabel(inst *instance) {
	selected := inst.selection()
	if selected == NoneID {
		return
	}

	markup := labelFor(inst.config.Values, selected)
	if li := inst.renderedEntry(selected); li != nil {
		markup = render.InnerHTML(li)
	}

	host := inst.host
	for _, prop := range hostStyleProps {
		host.SetStyle(prop, "")
	}
	host.SetHTML(markup)
	inst.container = nil

	r.emit(host, inst, EventReplacedLabel)
}
