package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/capture/internal/cli"
	"github.com/Veraticus/capture/internal/model"
)

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <text>",
		Short: "Capture text from the command line",
		Long: `Run the full capture pipeline on the given text and wait for it.

The text is classified, routed to its destination and recorded in the
activity log exactly as a webhook capture would be.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSend,
	}

	cmd.Flags().String("source", "cli", "source recorded with the capture")

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source, _ := cmd.Flags().GetString("source")

	a, err := newApp(ctx, slog.Default())
	if err != nil {
		return err
	}
	defer a.Close()

	c, runErr := a.runner.Run(ctx, model.CaptureRequest{
		Text:   strings.Join(args, " "),
		Source: source,
	})

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, cli.FormatClassification(c)); err != nil {
		return err
	}
	if runErr != nil {
		fmt.Fprintln(out, cli.FormatError("Routing failed; recorded in the activity log"))
		return runErr
	}
	fmt.Fprintln(out, cli.FormatSuccess("Routed to "+string(c.Action)))
	return nil
}
