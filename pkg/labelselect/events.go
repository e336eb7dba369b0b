package labelselect

import (
	"context"
	"strconv"

	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/render"
)

// Semantic events.
const (
	EventChange        = "change"
	EventSelectOption  = "selectOption"
	EventSelectNone    = "selectNone"
	EventUnfolded      = "unfolded"
	EventFolded        = "folded"
	EventRefreshed     = "refreshed"
	EventReplacedLabel = "replacedLabel"
)

// Events lists every semantic event name.
var Events = []string{
	EventChange,
	EventSelectOption,
	EventSelectNone,
	EventUnfolded,
	EventFolded,
	EventRefreshed,
	EventReplacedLabel,
}

// emit dispatches name on target and notifies the hooks on behalf of the
// instance's host.
func (r *Registry) emit(target *dom.Element, inst *instance, name string) {
	target.Trigger(name)
	for _, h := range r.hooks {
		h(inst.host, name)
	}
}

// onHostClick re-renders the control. Clicks inside the rendered container
// never get here because the container stops propagation.
func (r *Registry) onHostClick(inst *instance, e *dom.Event) {
	e.StopPropagation()
	if _, err := r.handler(context.Background(), inst.host, Command{Name: CmdRefresh}); err != nil {
		r.logger.Error("refresh on host click failed", "host", inst.host.HID(), "error", err)
	}
}

// onDocumentClick folds every open control. Clicks that land on a host or a
// container have already stopped propagating, so only outside clicks arrive.
func (r *Registry) onDocumentClick(*dom.Event) {
	for _, inst := range r.openInstances() {
		inst.container.Click()
	}
}

// onToggleClick flips the fold state. Any other open control is folded first
// so at most one list is open per document.
func (r *Registry) onToggleClick(inst *instance, e *dom.Event) {
	container := e.CurrentTarget

	for _, other := range r.openInstances() {
		if other != inst {
			other.container.Click()
		}
	}

	list := container.ChildByTag("ul")
	if container.ToggleClass(classUnfolded) {
		if list != nil {
			list.SetStyle("max-height", listHeight(list.ChildCount()))
		}
		r.emit(container, inst, EventUnfolded)
	} else {
		if list != nil {
			list.SetStyle("max-height", "0")
		}
		r.emit(container, inst, EventFolded)
	}

	e.StopPropagation()
}

// listHeight is (entries+1) * 1.6em, computed in tenths to keep the output
// free of float noise.
func listHeight(entries int) string {
	tenths := (entries + 1) * 16
	return strconv.FormatFloat(float64(tenths)/10, 'f', -1, 64) + "em"
}

func (r *Registry) onEntryClick(inst *instance, e *dom.Event) {
	li := e.CurrentTarget
	list := li.Parent()
	if list == nil {
		return
	}
	for _, sib := range list.Children() {
		sib.RemoveClass(classSelected)
	}
	li.AddClass(classSelected)

	var label *dom.Element
	if container := list.Parent(); container != nil {
		label = container.ChildByTag("span")
	}
	if label != nil {
		label.SetHTML(render.InnerHTML(li))
	}

	id, _ := li.Attr("data-id")
	if inst.selection() != id {
		inst.selected = id
		r.emit(inst.host, inst, EventChange)
	}

	if id == NoneID {
		if label != nil {
			label.AddClass(classSelectedNone)
		}
		r.emit(inst.host, inst, EventSelectNone)
		return
	}

	if label != nil {
		label.RemoveClass(classSelectedNone)
	}
	r.emit(inst.host, inst, EventSelectOption)

	if inst.config.ReplacedLabelOnSelect {
		e.StopPropagation()
		if _, err := r.handler(context.Background(), inst.host, Command{Name: CmdReplaceLabel}); err != nil {
			r.logger.Error("replace label failed", "host", inst.host.HID(), "error", err)
		}
	}
}
