package middleware

import (
	"context"
	"fmt"

	"github.com/vango-dev/labelselect/pkg/dom"
	"github.com/vango-dev/labelselect/pkg/labelselect"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "labelselect"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "labelselect").
	TracerName string

	// IncludeValues records the value of setOption calls and the argument
	// of commands. Values may be large; disabled by default.
	IncludeValues bool

	// Filter determines which calls to trace. If nil, all calls are traced.
	Filter func(call labelselect.Call) bool

	// AttributeExtractor adds custom attributes for each traced call.
	AttributeExtractor func(host *dom.Element, call labelselect.Call) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeValues enables recording call values.
func WithIncludeValues(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeValues = include
	}
}

// WithCallFilter sets a filter function for calls.
func WithCallFilter(filter func(call labelselect.Call) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(host *dom.Element, call labelselect.Call) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every call.
//
// The span is named after the call kind ("labelselect.setSelected") and
// carries the host handle, host id and the option key or command name.
// Errors are recorded on the span and set its status.
//
// The tracer comes from the global provider; configure it with
// otel.SetTracerProvider before creating registries.
func OpenTelemetry(opts ...OTelOption) labelselect.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next labelselect.Handler) labelselect.Handler {
		return func(ctx context.Context, host *dom.Element, call labelselect.Call) (any, error) {
			if config.Filter != nil && !config.Filter(call) {
				return next(ctx, host, call)
			}

			attrs := callAttributes(host, call, config.IncludeValues)
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(host, call)...)
			}

			spanCtx, span := config.tracer.Start(ctx,
				"labelselect."+call.Kind(),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			v, err := next(context.WithValue(spanCtx, spanKey{}, span), host, call)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return v, err
		}
	}
}

func callAttributes(host *dom.Element, call labelselect.Call, values bool) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("labelselect.call", call.Kind()),
		attribute.String("labelselect.host", host.HID()),
	}
	if id, ok := host.Attr("id"); ok {
		attrs = append(attrs, attribute.String("labelselect.host_id", id))
	}

	switch c := call.(type) {
	case labelselect.Configure:
		attrs = append(attrs, attribute.Int("labelselect.keys", len(c.Partial)))
	case labelselect.GetOption:
		attrs = append(attrs, attribute.String("labelselect.option", c.Key))
	case labelselect.SetOption:
		attrs = append(attrs, attribute.String("labelselect.option", c.Key))
		if values {
			attrs = append(attrs, attribute.String("labelselect.value", fmt.Sprint(c.Value)))
		}
	case labelselect.Command:
		attrs = append(attrs, attribute.String("labelselect.command", c.Name))
		if values && c.Arg != nil {
			attrs = append(attrs, attribute.String("labelselect.arg", fmt.Sprint(c.Arg)))
		}
	}
	return attrs
}

type spanKey struct{}

// SpanFromContext returns the span the OpenTelemetry middleware started for
// the current call, or nil outside a traced call.
func SpanFromContext(ctx context.Context) trace.Span {
	if span, ok := ctx.Value(spanKey{}).(trace.Span); ok {
		return span
	}
	return nil
}
