// Package otelobs adapts OpenTelemetry tracing to observability.Provider.
//
// Spans become OpenTelemetry spans created from a trace.TracerProvider (the
// global one unless [WithTracerProvider] is given). Logging and metrics are
// delegated to a fallback provider, by default a slogobs.Observer built from
// the environment.
package otelobs

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/leofalp/chatsorter/providers/observability"
	"github.com/leofalp/chatsorter/providers/observability/slogobs"
)

// InstrumentationName is the tracer name reported to OpenTelemetry.
const InstrumentationName = "github.com/leofalp/chatsorter"

// Observer routes spans to OpenTelemetry and everything else to a fallback.
type Observer struct {
	tracer   trace.Tracer
	fallback observability.Provider
}

var _ observability.Provider = (*Observer)(nil)

// Option configures an Observer.
type Option func(*Observer)

// WithTracerProvider uses provider instead of otel.GetTracerProvider().
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *Observer) {
		o.tracer = provider.Tracer(InstrumentationName)
	}
}

// WithFallback sets the provider that receives log and metric calls.
func WithFallback(fallback observability.Provider) Option {
	return func(o *Observer) {
		o.fallback = fallback
	}
}

// New builds an Observer.
func New(opts ...Option) *Observer {
	o := &Observer{}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(InstrumentationName)
	}
	if o.fallback == nil {
		o.fallback = slogobs.New()
	}
	return o
}

func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	ctx, otelSpan := o.tracer.Start(ctx, name, trace.WithAttributes(toOtelAttributes(attrs)...))
	span := &otelSpanAdapter{span: otelSpan}
	return observability.ContextWithSpan(ctx, span), span
}

func (o *Observer) Counter(name string) observability.Counter { return o.fallback.Counter(name) }

func (o *Observer) Histogram(name string) observability.Histogram { return o.fallback.Histogram(name) }

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Debug(ctx, msg, attrs...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Info(ctx, msg, attrs...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Warn(ctx, msg, attrs...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Error(ctx, msg, attrs...)
}

type otelSpanAdapter struct {
	span trace.Span
}

func (s *otelSpanAdapter) End() {
	s.span.End()
}

func (s *otelSpanAdapter) SetAttributes(attrs ...observability.Attribute) {
	s.span.SetAttributes(toOtelAttributes(attrs)...)
}

func (s *otelSpanAdapter) SetStatus(code observability.StatusCode, description string) {
	s.span.SetStatus(toOtelCode(code), description)
}

func (s *otelSpanAdapter) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
}

func (s *otelSpanAdapter) AddEvent(name string, attrs ...observability.Attribute) {
	s.span.AddEvent(name, trace.WithAttributes(toOtelAttributes(attrs)...))
}

func toOtelCode(code observability.StatusCode) codes.Code {
	switch code {
	case observability.StatusOK:
		return codes.Ok
	case observability.StatusError:
		return codes.Error
	default:
		return codes.Unset
	}
}

// toOtelAttributes converts attribute values to their closest OpenTelemetry
// type. Durations are recorded in milliseconds; anything else is formatted
// with %v.
func toOtelAttributes(attrs []observability.Attribute) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		switch v := attr.Value.(type) {
		case string:
			out = append(out, attribute.String(attr.Key, v))
		case bool:
			out = append(out, attribute.Bool(attr.Key, v))
		case int:
			out = append(out, attribute.Int(attr.Key, v))
		case int64:
			out = append(out, attribute.Int64(attr.Key, v))
		case float64:
			out = append(out, attribute.Float64(attr.Key, v))
		case time.Duration:
			out = append(out, attribute.Int64(attr.Key+".ms", v.Milliseconds()))
		default:
			out = append(out, attribute.String(attr.Key, fmt.Sprintf("%v", v)))
		}
	}
	return out
}
