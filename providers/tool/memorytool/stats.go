package memorytool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/chatsorter/providers/tool"
)

// StatsToolName is the name the model uses to read conversation statistics.
const StatsToolName = "ChatSorterStats"

// StatsInput is the argument of the stats tool.
type StatsInput struct {
	ChatID string `json:"chat_id" jsonschema:"description=Conversation to describe"`
}

// NewStatsTool returns a tool that reports mem.GetStats unchanged.
func NewStatsTool(mem Memory) *tool.Tool[StatsInput, map[string]any] {
	return tool.NewTool(
		StatsToolName,
		func(ctx context.Context, in StatsInput) (map[string]any, error) {
			if strings.TrimSpace(in.ChatID) == "" {
				return nil, errors.New("chat_id cannot be empty")
			}
			stats, err := mem.GetStats(ctx, in.ChatID)
			if err != nil {
				return nil, fmt.Errorf("fetching stats: %w", err)
			}
			return stats, nil
		},
		tool.WithDescription("Returns memory statistics for a conversation such as how many messages and memories it holds."),
	)
}
