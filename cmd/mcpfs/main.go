package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	internalmcp "github.com/mamaar/mcpfs/internal/mcp"
	"github.com/mamaar/mcpfs/pkg/fsops"
	"github.com/mamaar/mcpfs/pkg/types"
)

const version = "0.1.0"

func main() {
	var (
		projectDir   string
		referenceArg []string
		port         int
		logLevel     string
		showVersion  bool
	)

	pflag.StringVar(&projectDir, "project-dir", "", "Base directory for all file operations (required)")
	pflag.StringArrayVar(&referenceArg, "reference-project", nil,
		"Read-only reference project as name=path (repeatable)")
	pflag.IntVar(&port, "port", 0, "TCP port to listen on (0 for stdio)")
	pflag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pflag.BoolVar(&showVersion, "version", false, "Show version information")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mcpfs --project-dir DIR [flags]")
		fmt.Fprintln(os.Stderr, "\nMCP server exposing sandboxed file operations for one project directory.")
		fmt.Fprintln(os.Stderr, "Reference projects are read-only; an invalid path or duplicate name fails startup.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if showVersion {
		fmt.Printf("mcpfs v%s\n", version)
		fmt.Println("Model Context Protocol server for sandboxed file operations")
		os.Exit(0)
	}

	logger := newLogger(logLevel)

	if projectDir == "" {
		fmt.Fprintln(os.Stderr, "Error: --project-dir is required")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := types.NewConfig(projectDir)
	if err != nil {
		logger.Error("invalid project directory", "err", err)
		os.Exit(1)
	}
	for _, ref := range referenceArg {
		name, dir, ok := strings.Cut(ref, "=")
		if !ok {
			logger.Error("invalid --reference-project value, expected name=path", "value", ref)
			os.Exit(1)
		}
		if err := cfg.AddReference(name, dir); err != nil {
			logger.Error("invalid reference project", "err", err)
			os.Exit(1)
		}
	}

	adapter := fsops.SelectAdapter()
	if _, ok := adapter.(fsops.NullAdapter); ok {
		logger.Warn("git not found on PATH, moves will not preserve history")
	}

	logger.Info("starting MCP server",
		"project_dir", cfg.Project.Path,
		"reference_projects", cfg.ReferenceNames())

	state := internalmcp.NewServer(cfg, adapter, logger)

	mcpServer := server.NewMCPServer(
		"mcpfs",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(internalmcp.LoggingMiddleware(logger)),
	)
	internalmcp.RegisterAllTools(mcpServer, state)

	if port == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer)
	logger.Info("starting HTTP server", "port", port)
	if err := httpServer.Start(fmt.Sprintf(":%d", port)); err != nil {
		logger.Error("HTTP server failed", "err", err)
		os.Exit(1)
	}
}

// newLogger builds a stderr slog logger; stdout stays reserved for the
// stdio MCP transport.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
