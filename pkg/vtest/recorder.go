package vtest

import (
	"slices"
	"testing"

	"github.com/vango-dev/labelselect/pkg/dom"
)

// Recorder collects event names seen on an element.
type Recorder struct {
	names []string
}

// Record listens on el for each of events.
func Record(el *dom.Element, events ...string) *Recorder {
	rec := &Recorder{}
	for _, name := range events {
		el.On(name, func(e *dom.Event) { rec.names = append(rec.names, e.Type) })
	}
	return rec
}

// Names returns the recorded names in order.
func (r *Recorder) Names() []string {
	return slices.Clone(r.names)
}

// Count returns how often name was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, v := range r.names {
		if v == name {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.names = nil
}

// ExpectEvents asserts the exact recorded sequence.
func ExpectEvents(t testing.TB, rec *Recorder, want ...string) {
	t.Helper()
	if !slices.Equal(rec.names, want) {
		t.Errorf("events = %v, want %v", rec.names, want)
	}
}
