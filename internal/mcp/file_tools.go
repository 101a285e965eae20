package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mamaar/mcpfs/pkg/fsops"
	"github.com/mamaar/mcpfs/pkg/types"
)

// registerFileTools adds the primary-root tools: listing, reading, writing,
// editing, and moving files inside the project directory.
func registerFileTools(s *server.MCPServer, state *Server) {
	addListDirectoryTool(s, state)
	addListFilesTool(s, state)
	addReadFileTool(s, state)
	addSaveFileTool(s, state)
	addAppendFileTool(s, state)
	addDeleteFileTool(s, state)
	addEditFileTool(s, state)
	addMoveFileTool(s, state)
}

func addListDirectoryTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("list_directory",
		mcp.WithDescription("List the direct children of a directory in the project, filtered by .gitignore rules"),
		mcp.WithString("directory",
			mcp.Description("Directory to list, relative to the project directory (default: project root)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		dir := optionalStringArg(args, "directory", ".")

		names, err := fsops.ListDirectory(state.cfg.Project, dir)
		if err != nil {
			return toolError(err), nil
		}
		return jsonResult(names), nil
	})
}

func addListFilesTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("list_files",
		mcp.WithDescription("List all files under a directory recursively, as project-relative paths, filtered by .gitignore rules"),
		mcp.WithString("directory",
			mcp.Description("Directory to list from, relative to the project directory (default: project root)"),
		),
		mcp.WithBoolean("use_gitignore",
			mcp.Description("Filter results through .gitignore patterns"),
			mcp.DefaultBool(true),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		dir := optionalStringArg(args, "directory", ".")
		useGitignore := boolArg(args, "use_gitignore", true)

		files, err := fsops.ListFiles(state.cfg.Project, dir, useGitignore)
		if err != nil {
			return toolError(err), nil
		}
		return jsonResult(files), nil
	})
}

func addReadFileTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("read_file",
		mcp.WithDescription("Read the contents of a text file in the project"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		filePath, err := stringArg(args, "file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		content, err := fsops.ReadFile(state.cfg.Project, filePath)
		if err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultText(content), nil
	})
}

func addSaveFileTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("save_file",
		mcp.WithDescription("Write content to a file atomically, creating parent directories as needed"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
		mcp.WithString("content",
			mcp.Description("Content to write (missing content writes an empty file)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		filePath, err := stringArg(args, "file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content := optionalStringArg(args, "content", "")

		if err := fsops.SaveFile(state.cfg.Project, filePath, content); err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("wrote %d bytes to %s", len(content), filePath)), nil
	})
}

func addAppendFileTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("append_file",
		mcp.WithDescription("Append content to the end of an existing file"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Content to append"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		filePath, err := stringArg(args, "file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content, ok := args["content"].(string)
		if !ok {
			return mcp.NewToolResultError("content is required and must be a string"), nil
		}

		if err := fsops.AppendFile(state.cfg.Project, filePath, content); err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("appended %d bytes to %s", len(content), filePath)), nil
	})
}

func addDeleteFileTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("delete_this_file",
		mcp.WithDescription("Delete a file from the project (directories are refused)"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		filePath, err := stringArg(args, "file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := fsops.DeleteFile(state.cfg.Project, filePath); err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("deleted %s", filePath)), nil
	})
}

func addEditFileTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("edit_file",
		mcp.WithDescription("Make selective edits to a file using exact string matching. "+
			"Edits apply in order over the mutated buffer, replace only the first occurrence, "+
			"detect already-applied edits as no-op successes, and produce a unified diff. "+
			"Use dry_run to preview the diff without writing."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
		mcp.WithArray("edits",
			mcp.Required(),
			mcp.Description("Ordered edit operations, each with old_text and new_text"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"old_text": map[string]any{"type": "string"},
					"new_text": map[string]any{"type": "string"},
				},
				"required": []string{"old_text", "new_text"},
			}),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Preview changes without applying them"),
			mcp.DefaultBool(false),
		),
		mcp.WithObject("options",
			mcp.Description("Optional settings: preserve_indentation (bool, default false)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		filePath, err := stringArg(args, "file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		edits, err := decodeEdits(args["edits"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dryRun := boolArg(args, "dry_run", false)

		preserveIndentation := false
		if opts, ok := args["options"].(map[string]any); ok {
			preserveIndentation = boolArg(opts, "preserve_indentation", false)
		}

		result, err := fsops.ApplyEdits(state.cfg.Project, filePath, edits, dryRun, preserveIndentation)
		if err != nil {
			return toolError(err), nil
		}
		return jsonResult(result), nil
	})
}

func addMoveFileTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("move_file",
		mcp.WithDescription("Move or rename a file or directory within the project. "+
			"Uses git mv when the source is tracked, falling back to a filesystem move; "+
			"parent directories are created automatically and an existing destination is refused."),
		mcp.WithString("source_path",
			mcp.Required(),
			mcp.Description("Source path, relative to the project directory"),
		),
		mcp.WithString("destination_path",
			mcp.Required(),
			mcp.Description("Destination path, relative to the project directory"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		src, err := stringArg(args, "source_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dest, err := stringArg(args, "destination_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		record, err := fsops.MoveFile(ctx, state.cfg.Project, src, dest, state.adapter)
		if err != nil {
			return toolError(err), nil
		}
		return jsonResult(record), nil
	})
}

// decodeEdits converts the raw tool argument into EditOperations, naming
// the offending operation on malformed input.
func decodeEdits(raw any) ([]types.EditOperation, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("edits is required and must be an array of {old_text, new_text} objects")
	}
	edits := make([]types.EditOperation, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("edit %d must be an object with old_text and new_text", i)
		}
		oldText, oldOK := m["old_text"].(string)
		newText, newOK := m["new_text"].(string)
		if !oldOK || !newOK {
			return nil, fmt.Errorf("edit %d is missing required string field old_text or new_text", i)
		}
		edits = append(edits, types.EditOperation{OldText: oldText, NewText: newText})
	}
	return edits, nil
}
