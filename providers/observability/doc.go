// Package observability defines the interfaces and attribute conventions the
// chatsorter SDK uses for tracing, metrics and structured logging.
//
// [Provider] bundles [Tracer], [Metrics] and [Logger] into a single value that
// is handed to the client with client.WithObserver. The active provider and
// span travel on a [context.Context]; see [ContextWithObserver],
// [ContextWithSpan], [ObserverFromContext] and [SpanFromContext].
//
// Attribute keys, span names and metric names live in semconv.go.
package observability
