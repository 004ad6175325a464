package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/leofalp/chatsorter/providers/observability"
)

const (
	// DefaultPromptTemplate places the memory block right before the message.
	DefaultPromptTemplate = "{context}{message}"

	defaultMaxResults  = 3
	contextPlaceholder = "{context}"
	messagePlaceholder = "{message}"
	contextHeader      = "Previous context:\n"
)

// GetContext searches chatID with message and renders up to maxResults
// memories as a numbered list:
//
//	1. likes pizza (importance: 7.2)
//	2. vegetarian (importance: 3.0)
//
// A negative maxResults means 3 and 0 renders nothing. It returns "" when
// nothing relevant was found.
// Search errors are returned as is.
func (c *Client) GetContext(ctx context.Context, chatID, message string, maxResults int) (string, error) {
	if maxResults < 0 {
		maxResults = defaultMaxResults
	}

	resp, err := c.Search(ctx, chatID, message)
	if err != nil {
		return "", err
	}
	if !resp.Result.Found {
		return "", nil
	}

	items := firstN(resp.Result.Results, maxResults)
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, formatMemory(item)))
	}
	return strings.Join(lines, "\n"), nil
}

// BuildPrompt stores message, retrieves related memories and fills the
// template (DefaultPromptTemplate unless WithTemplate is given).
//
// Storing and searching fail independently: a failed step is logged as a
// warning and contributes nothing, so BuildPrompt always returns a usable
// prompt. When memories are found, {context} becomes
//
//	Previous context:
//	- likes pizza (importance: 7.2)
//	<blank line>
//
// and is empty otherwise. {message} is replaced with message verbatim.
func (c *Client) BuildPrompt(ctx context.Context, chatID, message string, opts ...PromptOption) string {
	settings := promptSettings{template: DefaultPromptTemplate, maxMemories: defaultMaxResults}
	for _, opt := range opts {
		opt(&settings)
	}

	if observer := c.observerFor(ctx); observer != nil {
		var span observability.Span
		ctx, span = observer.StartSpan(ctx, observability.SpanBuildPrompt,
			observability.String(observability.AttrChatID, chatID))
		ctx = observability.ContextWithSpan(ctx, span)
		defer span.End()
	}

	c.storeForPrompt(ctx, chatID, message)
	memoryContext := c.contextForPrompt(ctx, chatID, message, settings.maxMemories)

	prompt := strings.ReplaceAll(settings.template, contextPlaceholder, memoryContext)
	return strings.ReplaceAll(prompt, messagePlaceholder, message)
}

func (c *Client) storeForPrompt(ctx context.Context, chatID, message string) {
	if _, err := c.Process(ctx, chatID, message); err != nil {
		c.degrade(ctx, "memory storage failed, continuing without storing the message", chatID, err)
	}
}

func (c *Client) contextForPrompt(ctx context.Context, chatID, message string, maxMemories int) string {
	resp, err := c.Search(ctx, chatID, message)
	if err != nil {
		c.degrade(ctx, "memory search failed, continuing without context", chatID, err)
		return ""
	}
	if !resp.Result.Found {
		return ""
	}

	items := firstN(resp.Result.Results, maxMemories)
	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.Int(observability.AttrPromptMemories, len(items)))
	}
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+formatMemory(item))
	}
	return contextHeader + strings.Join(lines, "\n") + "\n\n"
}

func (c *Client) degrade(ctx context.Context, msg, chatID string, err error) {
	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventPromptDegraded, observability.Error(err))
	}
	c.warn(ctx, msg,
		observability.String(observability.AttrChatID, chatID),
		observability.Error(err),
	)
}

func formatMemory(item MemoryItem) string {
	return fmt.Sprintf("%s (importance: %.1f)", item.Content, item.DecayedImportance)
}

func firstN(items []MemoryItem, n int) []MemoryItem {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
