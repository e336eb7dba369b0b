// Package server runs a live labelselect page over WebSocket.
//
// Every connection gets its own Page: a dom.Document holding the configured
// hosts and a labelselect.Registry for them. The browser forwards clicks by
// handle id and the server answers with the re-rendered page plus the
// semantic events the click produced:
//
//	→ {"type":"click","hid":"h12"}
//	← {"type":"render","html":"<main ...>","events":[{"host":"lang","name":"change"}]}
//
// Calls take the same loosely typed arguments as the control's public API:
//
//	→ {"type":"call","host":"lang","args":["setSelected","fr"]}
//	← {"type":"render","html":"...","events":[...],"result":null}
//
// All work for a page happens on its session goroutine. Config reloads
// (see Watcher) are queued to each session and applied there.
//
// Routes:
//
//	GET /         page HTML with the client script
//	GET /ws       WebSocket endpoint
//	GET /metrics  Prometheus metrics (when enabled)
//	GET /healthz  liveness probe
package server
