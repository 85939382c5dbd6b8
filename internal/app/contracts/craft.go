package contracts

import (
	"context"
	"tablepoll-service/internal/pkg/craft_dto"
)

// Credentials travel with every call because the service never persists
// them; each request carries the caller's decrypted connection.
type CraftBlockClient interface {
	FindBlockByID(ctx context.Context, apiURL, apiKey, blockID string, maxDepth int) (*craft_dto.Block, error)
	InsertBlocks(ctx context.Context, apiURL, apiKey, documentID string, blocks []craft_dto.Block) (*craft_dto.InsertBlocksResponse, error)
	UpdateBlockMarkdown(ctx context.Context, apiURL, apiKey, blockID, markdown string) (*craft_dto.Block, error)
}

type CraftDocumentClient interface {
	FindAllDocuments(ctx context.Context, apiURL, apiKey string) ([]craft_dto.Document, error)
}
