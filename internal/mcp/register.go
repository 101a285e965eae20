package mcp

import "github.com/mark3labs/mcp-go/server"

// RegisterAllTools wires every mcpfs tool into the MCP server. Mutating
// tools are registered against the primary project root only; reference
// roots get their own read-only tool set and no mutating counterpart.
func RegisterAllTools(s *server.MCPServer, state *Server) {
	registerFileTools(s, state)
	registerReferenceTools(s, state)
}
