package memorytool

import (
	"context"

	"github.com/leofalp/chatsorter/core/client"
	"github.com/leofalp/chatsorter/providers/tool"
)

// Memory is the part of the ChatSorter client the tools need.
type Memory interface {
	AddMessage(ctx context.Context, chatID, message string, opts ...client.MessageOption) (*client.ProcessResponse, error)
	GetContext(ctx context.Context, chatID, message string, maxResults int) (string, error)
	GetStats(ctx context.Context, chatID string) (client.Payload, error)
}

var _ Memory = (*client.Client)(nil)

// NewTools returns the remember, recall and stats tools bound to mem.
func NewTools(mem Memory) []tool.GenericTool {
	return []tool.GenericTool{
		NewRememberTool(mem),
		NewRecallTool(mem),
		NewStatsTool(mem),
	}
}

// NewCatalog returns a catalog holding [NewTools].
func NewCatalog(mem Memory) *tool.Catalog {
	return tool.NewCatalogWithTools(NewTools(mem)...)
}
