// Package google implements the table, document and provisioning capabilities
// on Google Sheets, Docs and Drive.
package google

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/service"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for every credential type.
var Scopes = []string{
	sheets.SpreadsheetsScope,
	docs.DocumentsScope,
	drive.DriveScope,
}

// Config holds the configuration for the Google Workspace client.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	// ServiceAccountKey is a base64-encoded service account JSON key.
	ServiceAccountKey string
	RetryAttempts     int
	RetryDelay        time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != "" || c.ServiceAccountKey != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: no Google authentication method configured", common.ErrMissingConfig)
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or a service account", common.ErrInvalidConfig)
	}

	if c.ServiceAccountPath != "" && c.ServiceAccountKey != "" {
		return fmt.Errorf("%w: set either a service account path or an inline key, not both", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}

// RetryOptions returns the backoff used for idempotent reads.
func (c *Config) RetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  max(c.RetryAttempts, 1),
		InitialDelay: c.RetryDelay,
		MaxDelay:     c.RetryDelay * 8,
		Multiplier:   2,
	}
}

// serviceAccountJSON returns the raw key from the inline value or the key file.
func (c *Config) serviceAccountJSON() ([]byte, error) {
	if c.ServiceAccountKey != "" {
		key := strings.TrimSpace(c.ServiceAccountKey)
		if strings.HasPrefix(key, "{") {
			return []byte(key), nil
		}
		decoded, err := base64.StdEncoding.DecodeString(key)
		if err != nil {
			return nil, fmt.Errorf("unable to decode service account key: %w", err)
		}
		return decoded, nil
	}

	jsonKey, err := os.ReadFile(c.ServiceAccountPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}
	return jsonKey, nil
}
