// Package middleware provides production-grade middleware for labelselect
// registries.
//
// This package includes:
//   - OpenTelemetry tracing around every dispatched call
//   - Prometheus metrics for calls, errors and emitted events
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts a span for each call a registry
// handles, including the calls made by the control's own event handlers.
//
//	reg := labelselect.NewRegistry(doc,
//	    labelselect.WithMiddleware(
//	        middleware.OpenTelemetry(),
//	    ),
//	)
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithCallFilter(func(c labelselect.Call) bool {
//	        return c.Kind() != "getOption"
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware counts calls by kind and status, observes their
// duration and counts failures by error code. EmitHook counts the semantic
// events controls emit:
//
//	reg := labelselect.NewRegistry(doc,
//	    labelselect.WithMiddleware(middleware.Prometheus()),
//	    labelselect.WithEmitHook(middleware.EmitHook()),
//	)
//
//	http.Handle("/metrics", promhttp.Handler())
//
// Metrics are created once per process; the first Prometheus call decides
// the namespace and registry.
package middleware
