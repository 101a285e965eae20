package mcp

import (
	"context"
	"log/slog"
	"time"

	mcpsdk "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LoggingMiddleware wraps every tool handler with structured call logging:
// tool name, duration, and outcome. Applied once at the dispatch boundary
// so the core operations stay free of logging concerns.
func LoggingMiddleware(logger *slog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
			start := time.Now()
			name := request.Params.Name
			logger.Debug("tool call started", "tool", name)

			result, err := next(ctx, request)

			elapsed := time.Since(start)
			switch {
			case err != nil:
				logger.Error("tool call failed", "tool", name, "duration", elapsed, "err", err)
			case result != nil && result.IsError:
				logger.Warn("tool call returned error result", "tool", name, "duration", elapsed)
			default:
				logger.Info("tool call completed", "tool", name, "duration", elapsed)
			}
			return result, err
		}
	}
}
