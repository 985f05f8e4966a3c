package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/picket/internal/logging"
	picketmcp "github.com/aretw0/picket/pkg/adapters/mcp"
	"github.com/aretw0/picket/pkg/registry"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve record construction as MCP tools",
	Long:  `Exposes the declared schemas to MCP hosts: list_schemas, build_mapping and build_tuple become tool calls. Serves on stdio by default, or over SSE with --sse.`,
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().Int("sse", 0, "Serve over SSE on this port instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("schemas")
	ssePort, _ := cmd.Flags().GetInt("sse")
	levelStr, _ := cmd.Flags().GetString("log-level")

	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	logger := logging.New(level)

	reg := registry.New()
	if err := reg.LoadFile(path); err != nil {
		return err
	}
	logger.Info("schemas loaded", "file", path, "schemas", reg.Names())

	server := picketmcp.NewServer(reg)

	if ssePort > 0 {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.ServeSSE(ctx, ssePort)
	}
	return server.ServeStdio()
}
