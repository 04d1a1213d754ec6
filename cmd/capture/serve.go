package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/capture/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the capture webhook server",
		Long: `Start the HTTP server that accepts captures on POST /webhook.

Each accepted capture is acknowledged immediately and processed in the
background. On SIGINT or SIGTERM the server stops accepting requests and
waits for in-flight captures to finish before exiting.`,
		RunE: runServe,
	}

	cmd.Flags().Int("port", 0, "port to listen on (default: server.port, $PORT or 8080)")
	cmd.Flags().String("host", "", "interface to bind (default: all)")
	cmd.Flags().Int64("max-body", server.DefaultMaxBodyBytes, "maximum webhook body size in bytes")
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	a, err := newApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.WebhookSecret == "" {
		logger.Warn("No webhook secret configured; POST /webhook accepts unauthenticated requests")
	}

	maxBody, _ := cmd.Flags().GetInt64("max-body")
	srv := server.New(server.Config{
		Addr:          fmt.Sprintf("%s:%d", viper.GetString("server.host"), a.cfg.Port),
		WebhookSecret: a.cfg.WebhookSecret,
		MaxBodyBytes:  maxBody,
	}, a.runner, logger)

	return srv.ListenAndServe(ctx)
}
