package labelselect

import (
	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/vdom"
)

const (
	classContainer    = "labelSelect"
	classHighlight    = "highlight-selection"
	classUnfolded     = "unfolded"
	classSelected     = "selected"
	classSelectedNone = "selected-none"

	hostHeight = "1.6em"
)

// hostStyleProps are the inline styles refresh puts on the host and
// replaceLabel takes off again.
var hostStyleProps = []string{"position", "height", "display", "width", "min-width"}

// refresh rebuilds the host's subtree from the stored configuration and
// selection. Validation runs before the host is touched.
func (r *Registry) refresh(inst *instance) error {
	cfg := inst.config
	if err := cfg.Validate(); err != nil {
		return err
	}
	host := inst.host

	host.SetStyle("position", "relative")
	host.SetStyle("height", hostHeight)
	host.SetStyle("display", "inline-block")
	host.SetStyle("width", cfg.Width)
	host.SetStyle("min-width", cfg.Width)

	if inst.selected == "" {
		inst.selected = NoneID
	}
	fellBack := false
	if inst.selected != NoneID && !offers(cfg.Values, inst.selected) {
		r.logger.Debug("selected option no longer offered", "host", host.HID(), "id", inst.selected)
		inst.selected = NoneID
		fellBack = true
	}
	selected := inst.selected

	host.Empty()

	entries := make([]*vdom.VNode, 0, len(cfg.Values)+1)
	entries = append(entries, r.entry(inst, NoneID, "", selected == NoneID))
	marked := selected == NoneID
	label := ""
	for _, opt := range cfg.Values {
		isSelected := !marked && opt.ID == selected
		if isSelected {
			marked = true
			label = opt.Label
		}
		entries = append(entries, r.entry(inst, opt.ID, opt.Label, isSelected))
	}

	list := vdom.Ul(entries)
	span := vdom.Span(
		vdom.ClassIf(selected == NoneID, classSelectedNone),
		vdom.If(label != "", vdom.Raw(label)),
	)
	first, second := span, list
	if cfg.UnfoldDir == UnfoldUp {
		first, second = list, span
	}

	tree := vdom.Div(
		vdom.Class(classContainer),
		vdom.ClassIf(cfg.HighlightSel, classHighlight),
		vdom.Class("theme_"+cfg.Theme, "unfold_"+string(cfg.UnfoldDir), cfg.ExtraClass),
		vdom.OnClick(func(e *dom.Event) { r.onToggleClick(inst, e) }),
		first,
		second,
	)
	inst.container = r.doc.MountInto(host, tree)[0]

	if cfg.For != "" {
		host.SetAttr("for", cfg.For)
		host.SetAttr("data-for", cfg.For)
	} else {
		host.RemoveAttr("for")
		host.RemoveAttr("data-for")
	}

	if fellBack {
		r.emit(host, inst, EventChange)
		r.emit(host, inst, EventSelectNone)
	}

	r.logger.Debug("refreshed", "host", host.HID(), "entries", len(entries), "selected", selected)
	r.emit(host, inst, EventRefreshed)
	return nil
}

func (r *Registry) entry(inst *instance, id, label string, selected bool) *vdom.VNode {
	return vdom.Li(
		vdom.Data("id", id),
		vdom.ClassIf(selected, classSelected),
		vdom.If(label != "", vdom.Raw(label)),
		vdom.OnClick(func(e *dom.Event) { r.onEntryClick(inst, e) }),
	)
}

// renderedEntry finds the currently rendered entry for id.
func (inst *instance) renderedEntry(id string) *dom.Element {
	if inst.container == nil {
		return nil
	}
	list := inst.container.ChildByTag("ul")
	if list == nil {
		return nil
	}
	for _, li := range list.Children() {
		if v, ok := li.Attr("data-id"); ok && v == id {
			return li
		}
	}
	return nil
}

// Entries returns the ids of host's rendered entries in order, the
// synthetic "none" entry first. It is empty before the first refresh and
// after replaceLabel.
func (r *Registry) Entries(host *dom.Element) []string {
	inst, ok := r.instances[host]
	if !ok || inst.container == nil {
		return nil
	}
	list := inst.container.ChildByTag("ul")
	if list == nil {
		return nil
	}
	ids := make([]string, 0, list.ChildCount())
	for _, li := range list.Children() {
		id, _ := li.Attr("data-id")
		ids = append(ids, id)
	}
	return ids
}

func offers(values []Option, id string) bool {
	for _, opt := range values {
		if opt.ID == id {
			return true
		}
	}
	return false
}

func labelFor(values []Option, id string) string {
	for _, opt := range values {
		if opt.ID == id {
			return opt.Label
		}
	}
	return ""
}
