package tool

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/leofalp/chatsorter/providers/observability"
)

// Catalog is a registry of tools keyed by lowercased name. It is safe for
// concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// ToolNotFoundError is returned by [Catalog.Call] for an unknown tool name.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found", e.Name)
}

func NewCatalog() *Catalog {
	return &Catalog{
		tools: make(map[string]GenericTool),
	}
}

// NewCatalogWithTools returns a catalog holding tools.
func NewCatalogWithTools(tools ...GenericTool) *Catalog {
	catalog := NewCatalog()
	catalog.AddTools(tools...)
	return catalog
}

// AddTools registers tools under their ToolInfo().Name, replacing any tool
// with the same name.
func (c *Catalog) AddTools(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[strings.ToLower(t.ToolInfo().Name)] = t
	}
}

// Get looks a tool up by name, ignoring case.
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, exists := c.tools[strings.ToLower(name)]
	return t, exists
}

func (c *Catalog) Has(name string) bool {
	_, exists := c.Get(name)
	return exists
}

// Remove deletes the named tool and reports whether it was present.
func (c *Catalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := c.tools[key]; !exists {
		return false
	}
	delete(c.tools, key)
	return true
}

// Tools returns a copy of the registry.
func (c *Catalog) Tools() map[string]GenericTool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]GenericTool, len(c.tools))
	for name, t := range c.tools {
		out[name] = t
	}
	return out
}

func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Descriptions returns the description of every tool sorted by name, ready
// to be advertised to a model.
func (c *Catalog) Descriptions() []ToolDescription {
	c.mu.RLock()
	descriptions := make([]ToolDescription, 0, len(c.tools))
	for _, t := range c.tools {
		descriptions = append(descriptions, t.ToolInfo())
	}
	c.mu.RUnlock()

	slices.SortFunc(descriptions, func(a, b ToolDescription) int {
		return strings.Compare(a.Name, b.Name)
	})
	return descriptions
}

// Call dispatches a model's tool call. When ctx carries an observer, the
// call runs inside a tool execution span.
func (c *Catalog) Call(ctx context.Context, name, inputJSON string) (string, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", &ToolNotFoundError{Name: name}
	}

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		var span observability.Span
		ctx, span = observer.StartSpan(ctx, observability.SpanToolExecution,
			observability.String(observability.AttrToolName, t.ToolInfo().Name))
		defer span.End()

		out, err := t.Call(observability.ContextWithSpan(ctx, span), inputJSON)
		if err != nil {
			span.SetStatus(observability.StatusError, err.Error())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
		return out, err
	}

	return t.Call(ctx, inputJSON)
}
