package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leofalp/chatsorter/core/cost"
	"github.com/leofalp/chatsorter/core/parse"
	"github.com/leofalp/chatsorter/internal/jsonschema"
	"github.com/leofalp/chatsorter/internal/utils"
	"github.com/leofalp/chatsorter/providers/observability"
)

// ToolDescription is what a model is told about a tool.
type ToolDescription struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
	Metrics     *cost.ToolMetrics  `json:"metrics,omitempty"`
}

// Tool is a typed, callable tool. Use [NewTool] to build one.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Output      *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
	Metrics     *cost.ToolMetrics
}

// GenericTool is a tool whose input and output types are erased, so that
// tools of different types can share a [Catalog].
type GenericTool interface {
	ToolInfo() ToolDescription

	// Call runs the tool with JSON arguments and returns its JSON result.
	Call(ctx context.Context, inputJSON string) (string, error)

	GetMetrics() *cost.ToolMetrics
}

type funcToolOptions struct {
	Description string
	Metrics     *cost.ToolMetrics
}

// WithDescription sets the description shown to the model.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Description = description
	}
}

// WithMetrics attaches cost and performance metrics to the tool.
func WithMetrics(toolMetrics cost.ToolMetrics) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Metrics = &toolMetrics
	}
}

// NewTool builds a [Tool] named name around function. The input and output
// schemas are derived from I and O.
//
//	recall := tool.NewTool("ChatSorterRecall", recallFunc,
//	    tool.WithDescription("Recalls memories relevant to a query"),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{}
	for _, option := range options {
		option(toolOptions)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Parameters:  jsonschema.GenerateJSONSchema[I](),
		Output:      jsonschema.GenerateJSONSchema[O](),
		Function:    function,
		Metrics:     toolOptions.Metrics,
	}
}

func (t *Tool[I, O]) ToolInfo() ToolDescription {
	return ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
		Metrics:     t.Metrics,
	}
}

// Call parses inputJSON into I, runs the function and encodes its result.
// When ctx carries a span, the call is recorded on it as start and end
// events with the input, output and duration as attributes.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, utils.TruncateString(inputJSON, utils.DefaultMaxStringLength)),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd,
			observability.String(observability.AttrToolName, t.Name))
	}

	start := time.Now()

	input, err := parse.ParseStringAs[I](inputJSON)
	if err != nil {
		recordToolError(span, err, 0)
		return "", err
	}

	output, err := t.Function(ctx, input)
	duration := time.Since(start)
	if err != nil {
		recordToolError(span, err, duration)
		return "", err
	}

	encoded, err := json.Marshal(output)
	if err != nil {
		recordToolError(span, err, duration)
		return "", err
	}

	if span != nil {
		attrs := []observability.Attribute{
			observability.String(observability.AttrToolOutput, utils.TruncateString(string(encoded), utils.DefaultMaxStringLength)),
			observability.Duration(observability.AttrToolDuration, duration),
		}
		if t.Metrics != nil {
			attrs = append(attrs,
				observability.Float64("tool.cost.amount", t.Metrics.Amount),
				observability.String("tool.cost.currency", t.Metrics.Currency),
			)
		}
		span.SetAttributes(attrs...)
	}

	return string(encoded), nil
}

func (t *Tool[I, O]) GetMetrics() *cost.ToolMetrics {
	return t.Metrics
}

func recordToolError(span observability.Span, err error, duration time.Duration) {
	if span == nil {
		return
	}
	span.RecordError(err)
	attrs := []observability.Attribute{observability.String(observability.AttrToolError, err.Error())}
	if duration > 0 {
		attrs = append(attrs, observability.Duration(observability.AttrToolDuration, duration))
	}
	span.SetAttributes(attrs...)
}
