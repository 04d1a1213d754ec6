package google

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/capture/internal/service"
)

// Client implements service.Store on Google Workspace. It is safe for
// concurrent use.
type Client struct {
	sheets *sheets.Service
	docs   *docs.Service
	drive  *drive.Service
	logger *slog.Logger
}

var _ service.Store = (*Client)(nil)

// NewClient creates a Workspace client authenticated per cfg.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tokenSource, err := newTokenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	return newClient(ctx, logger, option.WithHTTPClient(httpClient))
}

func newClient(ctx context.Context, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	docsService, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create docs service: %w", err)
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}

	return &Client{
		sheets: sheetsService,
		docs:   docsService,
		drive:  driveService,
		logger: logger,
	}, nil
}

// newTokenSource builds a service account or refresh-token source.
func newTokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	if cfg.ServiceAccountPath != "" || cfg.ServiceAccountKey != "" {
		jsonKey, err := cfg.serviceAccountJSON()
		if err != nil {
			return nil, err
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		return jwtConfig.TokenSource(ctx), nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}

	token := &oauth2.Token{
		RefreshToken: cfg.RefreshToken,
		TokenType:    "Bearer",
	}

	return oauthConfig.TokenSource(ctx, token), nil
}
