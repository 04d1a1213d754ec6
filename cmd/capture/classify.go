package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/capture/internal/cli"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Classify text without routing it",
		Long: `Run the classifier on the given text and print the result.

Nothing is written: no destination is updated and no activity row is
recorded. Useful for checking prompts and the project/tag registry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().String("source", "cli", "source reported to the classifier")
	cmd.Flags().Bool("json", false, "print the classification as JSON")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source, _ := cmd.Flags().GetString("source")
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := newApp(ctx, slog.Default())
	if err != nil {
		return err
	}
	defer a.Close()

	c := a.classifier.Classify(ctx, strings.Join(args, " "), source)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	_, err = fmt.Fprintln(out, cli.FormatClassification(c))
	return err
}
