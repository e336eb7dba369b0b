// Package vtest provides testing helpers for labelselect hosts.
//
// # Page Fixture
//
// NewPage builds a document with labelled hosts and a registry:
//
//	page := vtest.NewPage(t, "lang", "country")
//	ctl := page.Control("lang")
//	ctl.Configure(labelselect.Partial{"values": opts})
//
// # Event Recorder
//
// Record captures semantic events in dispatch order:
//
//	rec := vtest.Record(page.Host("lang"), labelselect.Events...)
//	ctl.SetSelected("b")
//	vtest.ExpectEvents(t, rec, "change", "selectOption", "replacedLabel")
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, page.Host("lang"), `data-id="b"`)
//	vtest.ExpectNotContains(t, page.Host("lang"), "selected-none")
package vtest
