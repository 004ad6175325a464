package memorytool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/chatsorter/core/cost"
	"github.com/leofalp/chatsorter/providers/tool"
)

const (
	// RecallToolName is the name the model uses to retrieve memories.
	RecallToolName = "ChatSorterRecall"

	defaultRecallResults = 3
)

// RecallInput is the argument of the recall tool.
type RecallInput struct {
	ChatID string `json:"chat_id" jsonschema:"description=Conversation to search"`
	Query  string `json:"query" jsonschema:"description=What to look for in the conversation memory"`
	// MaxResults <= 0 means 3. The tool applies this default itself, since
	// Memory.GetContext renders nothing for a limit of 0.
	MaxResults int `json:"max_results,omitempty" jsonschema:"description=Maximum number of memories to return (default 3)"`
}

// RecallOutput is what the recall tool hands back to the model.
type RecallOutput struct {
	Found bool `json:"found"`
	// Memories is a numbered list, one memory per line with its importance.
	Memories string `json:"memories"`
}

// NewRecallTool returns a tool that retrieves memories with mem.GetContext.
func NewRecallTool(mem Memory) *tool.Tool[RecallInput, RecallOutput] {
	return tool.NewTool(
		RecallToolName,
		func(ctx context.Context, in RecallInput) (RecallOutput, error) {
			if strings.TrimSpace(in.ChatID) == "" {
				return RecallOutput{}, errors.New("chat_id cannot be empty")
			}
			limit := in.MaxResults
			if limit <= 0 {
				limit = defaultRecallResults
			}
			memories, err := mem.GetContext(ctx, in.ChatID, in.Query, limit)
			if err != nil {
				return RecallOutput{}, fmt.Errorf("recalling memories: %w", err)
			}
			return RecallOutput{Found: memories != "", Memories: memories}, nil
		},
		tool.WithDescription("Searches the long-term memory of a conversation and returns the most relevant memories with their importance. Use it before answering questions about earlier parts of the conversation."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0,
			Currency:                "USD",
			CostDescription:         "included in the ChatSorter plan",
			Accuracy:                0.9,
			AverageDurationInMillis: 300,
		}),
	)
}
