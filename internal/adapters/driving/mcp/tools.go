package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GroundInput is the input schema for the ground tool.
type GroundInput struct {
	BookID string `json:"book_id" jsonschema:"the book to search for grounding passages"`
	Query  string `json:"query" jsonschema:"the conversation text to ground"`
	TopK   int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to return (default 5)"`
}

// GroundOutput is the output schema for the ground tool.
type GroundOutput struct {
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
}

// PassageOutput represents a single grounding passage.
type PassageOutput struct {
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// ReindexInput is the input schema for the reindex tool.
type ReindexInput struct {
	BookID  string `json:"book_id" jsonschema:"the book whose index to rebuild"`
	Content string `json:"content" jsonschema:"the full book text to index"`
}

// ReindexOutput is the output schema for the reindex tool.
type ReindexOutput struct {
	ChunksProcessed int `json:"chunks_processed"`
	TotalChunks     int `json:"total_chunks"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ground",
		Description: "Retrieve book passages relevant to conversation text",
	}, s.handleGround)

	if s.ports.Indexing != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "reindex",
			Description: "Rebuild a book's grounding index from raw text",
		}, s.handleReindex)
	}
}

// handleGround handles the ground tool invocation.
func (s *Server) handleGround(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GroundInput,
) (*mcp.CallToolResult, GroundOutput, error) {
	passages, err := s.ports.Grounding.Ground(ctx, input.BookID, input.Query, input.TopK)
	if err != nil {
		return nil, GroundOutput{}, err
	}

	output := GroundOutput{
		Passages: make([]PassageOutput, len(passages)),
		Count:    len(passages),
	}
	for i := range passages {
		output.Passages[i] = PassageOutput{
			Content:    passages[i].Content,
			Similarity: passages[i].Similarity,
		}
	}

	return nil, output, nil
}

// handleReindex handles the reindex tool invocation.
func (s *Server) handleReindex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReindexInput,
) (*mcp.CallToolResult, ReindexOutput, error) {
	if s.ports.Indexing == nil {
		return nil, ReindexOutput{}, errors.New("indexing service not configured")
	}

	summary, err := s.ports.Indexing.Reindex(ctx, s.ports.Owner, input.BookID, input.Content)
	if err != nil {
		return nil, ReindexOutput{}, err
	}

	return nil, ReindexOutput{
		ChunksProcessed: summary.ChunksProcessed,
		TotalChunks:     summary.TotalChunks,
	}, nil
}
