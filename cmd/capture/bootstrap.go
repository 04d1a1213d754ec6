package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/capture/internal/cli"
	"github.com/Veraticus/capture/internal/config"
	"github.com/Veraticus/capture/internal/provision"
)

func bootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the folders, sheets and documents capture writes to",
		Long: `Create the full capture workspace in one go:

  Voice Capture System/
    Project Notes/
    Project Ideas/
    System/
      Config        (Projects and Tags tabs)
      Saved Links
      Activity Log
      Inbox

Run it once per backend. The printed identifiers belong in your .env file
or, with --write-config, are saved to the config file directly.`,
		RunE: runBootstrap,
	}

	cmd.Flags().String("parent", "", "folder to create the workspace in (default: top level)")
	cmd.Flags().Bool("write-config", false, "save the created identifiers to the config file")

	return cmd
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	parent, _ := cmd.Flags().GetString("parent")
	writeConfig, _ := cmd.Flags().GetBool("write-config")

	cfg := config.LoadCaptureConfig()
	be, err := openBackend(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer be.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Creating "+provision.RootFolderName+" ("+be.name+")"))

	bar := cli.NewProgressBar(out, provision.BootstrapSteps, "Provisioning...")
	b := provision.NewBootstrapper(be.store, slog.Default(), func(provision.Step) { cli.Advance(bar) })

	layout, err := b.Bootstrap(ctx, parent)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	fmt.Fprintln(out, cli.RenderBox(cli.FolderIcon+" Created", cli.FormatKeyValues([][2]string{
		{provision.RootFolderName, layout.RootFolderID},
		{provision.ProjectNotesFolderName, layout.ProjectNotesFolderID},
		{provision.IdeasFolderName, layout.IdeasFolderID},
		{provision.SystemFolderName, layout.SystemFolderID},
		{provision.ConfigTableName, layout.ConfigSheetID},
		{provision.LinksTableName, layout.LinksSheetID},
		{provision.ActivityLogTableName, layout.ActivityLogSheetID},
		{provision.InboxDocName, layout.InboxDocID},
	})))

	if writeConfig {
		viper.Set("destinations.config_sheet_id", layout.ConfigSheetID)
		viper.Set("destinations.links_sheet_id", layout.LinksSheetID)
		viper.Set("destinations.activity_log_sheet_id", layout.ActivityLogSheetID)
		viper.Set("destinations.ideas_folder_id", layout.IdeasFolderID)
		viper.Set("destinations.inbox_doc_id", layout.InboxDocID)
		path, err := saveConfig()
		if err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(out, cli.FormatSuccess("Saved identifiers to "+path))
		return nil
	}

	fmt.Fprintln(out, cli.FormatInfo("Add these to your .env file:"))
	fmt.Fprintln(out, strings.Join(layout.EnvLines(), "\n"))
	return nil
}
