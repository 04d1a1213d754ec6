package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/capture/internal/mcp"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve capture tools over MCP stdio",
		Long: `Expose capture_text and capture_classify as Model Context Protocol
tools on stdin/stdout. Captures are routed synchronously and recorded in the
activity log exactly like webhook captures. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			return mcp.Run(a.runner, a.classifier, version)
		},
	}
}
