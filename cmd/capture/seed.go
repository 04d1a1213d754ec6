package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/capture/internal/cli"
	"github.com/Veraticus/capture/internal/config"
	"github.com/Veraticus/capture/internal/model"
	"github.com/Veraticus/capture/internal/provision"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the config registry with starter projects and tags",
		Long: `Append a starter set of projects and tags to the Config sheet so the
classifier has context from the first capture. Edit the sheet afterwards to
match your own projects.`,
		RunE: runSeed,
	}

	cmd.Flags().Bool("skip-projects", false, "only seed tags")
	cmd.Flags().Bool("skip-tags", false, "only seed projects")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	skipProjects, _ := cmd.Flags().GetBool("skip-projects")
	skipTags, _ := cmd.Flags().GetBool("skip-tags")

	cfg := config.LoadCaptureConfig()
	be, err := openBackend(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer be.Close()

	var projects []model.Project
	var tags []model.Tag
	if !skipProjects {
		projects = provision.DefaultProjects()
	}
	if !skipTags {
		tags = provision.DefaultTags()
	}

	out := cmd.OutOrStdout()
	bar := cli.NewProgressBar(out, len(projects)+len(tags), "Seeding config...")

	res, err := provision.Seed(ctx, be.store, cfg.ConfigSheetID, projects, tags, func() { cli.Advance(bar) })
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Seeded %d projects and %d tags", res.Projects, res.Tags)))
	return nil
}
