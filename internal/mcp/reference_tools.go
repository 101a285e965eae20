package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mamaar/mcpfs/pkg/fsops"
)

// registerReferenceTools adds the read-only tools for named reference
// roots. No mutating tool is ever routed to a reference root; the
// containment, ignore, and listing machinery is the same as for the
// project root.
func registerReferenceTools(s *server.MCPServer, state *Server) {
	addListReferenceProjectsTool(s, state)
	addListReferenceDirectoryTool(s, state)
	addReadReferenceFileTool(s, state)
}

func addListReferenceProjectsTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("list_reference_projects",
		mcp.WithDescription("List the names of the registered read-only reference projects"),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(state.cfg.ReferenceNames()), nil
	})
}

func addListReferenceDirectoryTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("list_reference_directory",
		mcp.WithDescription("List the direct children of a directory in a reference project, filtered by .gitignore rules"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Name of the reference project"),
		),
		mcp.WithString("directory",
			mcp.Description("Directory to list, relative to the reference project root (default: its root)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		project, err := stringArg(args, "project")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		root, ok := state.cfg.Reference(project)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown reference project %q", project)), nil
		}
		dir := optionalStringArg(args, "directory", ".")

		names, err := fsops.ListDirectory(root, dir)
		if err != nil {
			return toolError(err), nil
		}
		return jsonResult(names), nil
	})
}

func addReadReferenceFileTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("read_reference_file",
		mcp.WithDescription("Read the contents of a text file in a reference project"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Name of the reference project"),
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the reference project root"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		project, err := stringArg(args, "project")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		root, ok := state.cfg.Reference(project)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown reference project %q", project)), nil
		}
		filePath, err := stringArg(args, "file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		content, err := fsops.ReadFile(root, filePath)
		if err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultText(content), nil
	})
}
