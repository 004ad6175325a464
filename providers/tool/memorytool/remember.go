package memorytool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/leofalp/chatsorter/core/cost"
	"github.com/leofalp/chatsorter/providers/observability"
	"github.com/leofalp/chatsorter/providers/tool"
)

const (
	// RememberToolName is the name the model uses to store a memory.
	RememberToolName = "ChatSorterRemember"

	// FormatText stores the content as given.
	FormatText = "text"
	// FormatHTML converts the content to markdown before storing it.
	FormatHTML = "html"
)

// RememberInput is the argument of the remember tool.
type RememberInput struct {
	ChatID  string `json:"chat_id" jsonschema:"description=Conversation whose memory receives the content"`
	Content string `json:"content" jsonschema:"description=Fact or message to remember"`
	// Format defaults to text.
	Format string `json:"format,omitempty" jsonschema:"description=Content format; html is converted to markdown before storing,enum=text,enum=html"`
}

// RememberOutput reports what the server stored.
type RememberOutput struct {
	Stored          bool    `json:"stored"`
	ImportanceScore float64 `json:"importance_score"`
	// Content is the text actually sent, after any HTML conversion.
	Content string `json:"content"`
}

// NewRememberTool returns a tool that stores content with mem.AddMessage.
func NewRememberTool(mem Memory) *tool.Tool[RememberInput, RememberOutput] {
	return tool.NewTool(
		RememberToolName,
		func(ctx context.Context, in RememberInput) (RememberOutput, error) {
			return remember(ctx, mem, in)
		},
		tool.WithDescription("Stores a fact or message in the long-term memory of a conversation. The server scores its importance so that later recalls favour what matters. Use it when the user shares preferences or facts worth keeping."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0,
			Currency:                "USD",
			CostDescription:         "included in the ChatSorter plan",
			AverageDurationInMillis: 400,
		}),
	)
}

func remember(ctx context.Context, mem Memory, in RememberInput) (RememberOutput, error) {
	if strings.TrimSpace(in.ChatID) == "" {
		return RememberOutput{}, errors.New("chat_id cannot be empty")
	}

	content, err := normalizeContent(in.Content, in.Format)
	if err != nil {
		return RememberOutput{}, err
	}
	if strings.TrimSpace(content) == "" {
		return RememberOutput{}, errors.New("content cannot be empty")
	}

	resp, err := mem.AddMessage(ctx, in.ChatID, content)
	if err != nil {
		return RememberOutput{}, fmt.Errorf("storing memory: %w", err)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(
			observability.String(observability.AttrChatID, in.ChatID),
			observability.Float64(observability.AttrImportanceScore, resp.Result.ImportanceScore),
		)
	}

	return RememberOutput{
		Stored:          true,
		ImportanceScore: resp.Result.ImportanceScore,
		Content:         content,
	}, nil
}

func normalizeContent(content, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return content, nil
	case FormatHTML:
		markdown, err := htmltomarkdown.ConvertString(content)
		if err != nil {
			return "", fmt.Errorf("converting HTML to markdown: %w", err)
		}
		return strings.TrimSpace(markdown), nil
	default:
		return "", fmt.Errorf("unsupported format %q (want %s or %s)", format, FormatText, FormatHTML)
	}
}
