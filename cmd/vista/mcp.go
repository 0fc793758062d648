package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/vista/pkg/adapters/mcp"
	"github.com/aretw0/vista/pkg/observability"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the viewer as an MCP Server.
This allows AI agents to walk through a tour with tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		viewer, err := newViewer(cfg, logger, observability.LogHooks(logger))
		if err != nil {
			return err
		}
		sessions, closeStore, err := newSessions(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(viewer, sessions, mcp.WithLogger(logger))

		switch cfg.MCP.Transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting Vista MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := srv.ServeSSE(ctx, cfg.MCP.Addr, cfg.MCP.BaseURL)
			// Ignore server closed error if it was caused by context cancellation
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("mcp-addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("mcp-base-url", "", "Public base URL of the SSE server (default http://localhost<addr>)")
}
