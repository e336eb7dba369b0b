package dom

// Handler is an event listener.
type Handler func(e *Event)

// ListenerID identifies a registered listener so it can be removed.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn Handler
}

// Event is a dispatched event. Bubbling events visit the target, then each
// ancestor, then the document's own listeners (if the target is connected).
type Event struct {
	Type    string
	Bubbles bool

	// Detail carries an optional payload for custom events.
	Detail any

	// Target is the element the event was dispatched on.
	Target *Element

	// CurrentTarget is the element whose listeners are running, nil while
	// document-level listeners run.
	CurrentTarget *Element

	stopped bool
}

// NewEvent returns a bubbling event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ, Bubbles: true}
}

// StopPropagation prevents the event from reaching further ancestors or the
// document. Remaining listeners on the current element still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// fire runs a snapshot of ls so listeners may add or remove listeners freely.
func fire(ls []*listener, e *Event) {
	if len(ls) == 0 {
		return
	}
	snapshot := make([]*listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn(e)
	}
}

func removeListener(ls []*listener, id ListenerID) ([]*listener, bool) {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i:i], ls[i+1:]...), true
		}
	}
	return ls, false
}
