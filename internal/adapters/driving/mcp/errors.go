// Package mcp provides an MCP (Model Context Protocol) server adapter for Lorebase.
// It lets AI assistants ground character chat in book passages and manage the
// local library.
package mcp

import "errors"

// ErrMissingGroundingService is returned when the grounding service is not provided.
var ErrMissingGroundingService = errors.New("mcp: grounding service is required")
