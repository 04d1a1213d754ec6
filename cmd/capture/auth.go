package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/capture/internal/cli"
	"github.com/Veraticus/capture/internal/config"
	"github.com/Veraticus/capture/internal/google"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authGoogleCmd())

	return cmd
}

func authGoogleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "google",
		Short: "Authenticate with Google Workspace",
		Long: `Authenticate with Google Sheets, Docs and Drive using OAuth2.

This command will:
1. Open your browser to authenticate with Google
2. Save the token next to your config
3. Update your config file with the refresh token

Not needed when a service account key is configured.`,
		RunE: runAuthGoogle,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().String("listen", "localhost:8085", "address for the OAuth2 callback")

	return cmd
}

func runAuthGoogle(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID, clientSecret := config.GoogleOAuthClient()
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("OAuth2 credentials not found. Please set google.client_id and google.client_secret in config or use --client-id and --client-secret flags")
	}
	listen, _ := cmd.Flags().GetString("listen")

	tokenFile, err := tokenFilePath()
	if err != nil {
		return err
	}

	slog.Info("Starting Google authentication", "token_file", tokenFile)

	token, err := google.AuthenticateOAuth2Interactive(ctx, google.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		ListenAddr:   listen,
	}, func(url string) {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Open this URL to authorize capture:"))
		fmt.Fprintln(cmd.OutOrStdout(), url)
		openBrowser(url)
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("google.client_id", clientID)
	viper.Set("google.client_secret", clientSecret)
	viper.Set("google.refresh_token", token.RefreshToken)

	if _, err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Could not save the refresh token; add it to config.yaml as google.refresh_token"))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Authentication successful"))
	return nil
}

func tokenFilePath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "capture", "google-token.json"), nil
}

// saveConfig writes viper's state to the config file in use, or the default
// location when none was read, and returns the path written.
func saveConfig() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configFile = filepath.Join(home, ".config", "capture", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return "", err
	}

	return configFile, viper.WriteConfigAs(configFile)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}
