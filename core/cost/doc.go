// Package cost describes what a tool call costs and how it performs.
//
// [ToolMetrics] is attached to a tool so that callers can account for each
// call and so that the metrics can be surfaced to the model alongside the
// tool description.
package cost
