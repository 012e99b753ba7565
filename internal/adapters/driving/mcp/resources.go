package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Lorebase resources.
	uriScheme = "lorebase://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing books.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "books",
		Name:        "books",
		Description: "List of all books in the library",
		MIMEType:    "application/json",
	}, s.handleBooksResource)

	// Static resource for listing characters.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "characters",
		Name:        "characters",
		Description: "List of all character definitions",
		MIMEType:    "application/json",
	}, s.handleCharactersResource)

	// Template for a character's full definition.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "characters/{characterId}",
		Name:        "character-definition",
		Description: "Full definition of a specific character",
		MIMEType:    "application/json",
	}, s.handleCharacterResource)
}

// handleBooksResource returns a list of all books.
func (s *Server) handleBooksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return emptyJSONResource(req.Params.URI), nil
	}

	books, err := s.ports.Library.ListBooks(ctx, s.ports.Owner)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	// Build simplified book list.
	type bookInfo struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		Author     string `json:"author,omitempty"`
		Indexed    bool   `json:"indexed"`
		ChunkCount int    `json:"chunk_count"`
	}

	infos := make([]bookInfo, len(books))
	for i := range books {
		infos[i] = bookInfo{
			ID:         books[i].ID,
			Title:      books[i].Title,
			Author:     books[i].Author,
			Indexed:    books[i].HasContent,
			ChunkCount: books[i].ChunkCount,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleCharactersResource returns a list of all characters.
func (s *Server) handleCharactersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return emptyJSONResource(req.Params.URI), nil
	}

	defs, err := s.ports.Library.ListCharacters(ctx, s.ports.Owner)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	type characterInfo struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role,omitempty"`
		Book string `json:"book_id,omitempty"`
	}

	infos := make([]characterInfo, len(defs))
	for i := range defs {
		infos[i] = characterInfo{
			ID:   defs[i].ID,
			Name: defs[i].Name,
			Role: defs[i].Role,
			Book: defs[i].BookID,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleCharacterResource returns a character's full definition.
func (s *Server) handleCharacterResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	characterID := extractCharacterID(req.Params.URI)
	if characterID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	def, err := s.ports.Library.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, def.Snapshot())
}

// extractCharacterID pulls the character ID out of a
// lorebase://characters/{characterId} URI.
func extractCharacterID(uri string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+"characters/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func emptyJSONResource(uri string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     "[]",
		}},
	}
}
