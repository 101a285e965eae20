// Package mcp wires the sandboxed file operations into MCP tools. All
// argument decoding, result shaping, and cross-cutting logging lives here;
// the core in pkg/fsops stays pure and independently testable.
package mcp

import (
	"log/slog"

	"github.com/mamaar/mcpfs/pkg/fsops"
	"github.com/mamaar/mcpfs/pkg/types"
)

// Server holds the shared state for the MCP tool handlers: the immutable
// root configuration, the version-control adapter chosen at startup, and
// the logger. There is no per-call state; every tool invocation is
// self-contained.
type Server struct {
	cfg     *types.Config
	adapter fsops.VersionControlAdapter
	logger  *slog.Logger
}

// NewServer creates the handler state for the given configuration.
func NewServer(cfg *types.Config, adapter fsops.VersionControlAdapter, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		adapter: adapter,
		logger:  logger,
	}
}
