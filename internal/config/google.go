package config

import (
	"github.com/Veraticus/capture/internal/google"
	"github.com/spf13/viper"
)

// LoadGoogleConfig loads Google Workspace credentials. It follows this precedence:
// 1. Viper configuration (config file or CAPTURE_ env vars)
// 2. Direct environment variables (GOOGLE_*)
// 3. Default values
func LoadGoogleConfig() (*google.Config, error) {
	cfg := google.DefaultConfig()

	cfg.ServiceAccountPath = ExpandPath(firstNonEmpty(
		viper.GetString("google.service_account_path"),
		"GOOGLE_SERVICE_ACCOUNT_PATH", "GOOGLE_APPLICATION_CREDENTIALS"))
	cfg.ServiceAccountKey = firstNonEmpty(viper.GetString("google.service_account_key"), "GOOGLE_SERVICE_ACCOUNT_KEY")
	cfg.ClientID = firstNonEmpty(viper.GetString("google.client_id"), "GOOGLE_CLIENT_ID")
	cfg.ClientSecret = firstNonEmpty(viper.GetString("google.client_secret"), "GOOGLE_CLIENT_SECRET")
	cfg.RefreshToken = firstNonEmpty(viper.GetString("google.refresh_token"), "GOOGLE_REFRESH_TOKEN")

	if v := viper.GetInt("google.retry_attempts"); v > 0 {
		cfg.RetryAttempts = v
	}
	if v := viper.GetDuration("google.retry_delay"); v > 0 {
		cfg.RetryDelay = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GoogleOAuthClient returns the OAuth2 client credentials used by the
// interactive login. Unlike LoadGoogleConfig it does not need a refresh token.
func GoogleOAuthClient() (clientID, clientSecret string) {
	return firstNonEmpty(viper.GetString("google.client_id"), "GOOGLE_CLIENT_ID"),
		firstNonEmpty(viper.GetString("google.client_secret"), "GOOGLE_CLIENT_SECRET")
}
