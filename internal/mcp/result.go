package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mamaar/mcpfs/pkg/types"
)

// jsonResult marshals v and wraps it in a text content block.
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// toolError shapes an error for the calling LLM. FileOpError already names
// the offending path or pattern and the violated invariant; anything else
// is reported as a generic operation failure so raw system text never
// leaks to the client.
func toolError(err error) *mcp.CallToolResult {
	if fe, ok := err.(*types.FileOpError); ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", fe.Kind, fe.Error()))
	}
	return mcp.NewToolResultError(fmt.Sprintf("operation failed: %v", err))
}

// stringArg extracts a required string argument.
func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required and must be a non-empty string", name)
	}
	return v, nil
}

// optionalStringArg extracts a string argument, returning def when absent.
func optionalStringArg(args map[string]any, name, def string) string {
	if v, ok := args[name].(string); ok && v != "" {
		return v
	}
	return def
}

// boolArg extracts a boolean argument, returning def when absent.
func boolArg(args map[string]any, name string, def bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}
