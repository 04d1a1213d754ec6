package config

import (
	"strconv"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendGoogle = "google"
	BackendLocal  = "local"
)

// DefaultPort is used when neither server.port nor PORT is set.
const DefaultPort = 8080

// Capture holds destination identifiers and server settings. Identifiers are
// never defaulted; the component that needs one fails when it is empty.
type Capture struct {
	LinksSheetID       string
	ActivityLogSheetID string
	ConfigSheetID      string
	IdeasFolderID      string
	InboxDocID         string
	WebhookSecret      string
	Backend            string
	DatabasePath       string
	Port               int
}

// LoadCaptureConfig reads destination ids with viper keys first and the bare
// environment names second.
func LoadCaptureConfig() Capture {
	cfg := Capture{
		LinksSheetID:       firstNonEmpty(viper.GetString("destinations.links_sheet_id"), "LINKS_SHEET_ID"),
		ActivityLogSheetID: firstNonEmpty(viper.GetString("destinations.activity_log_sheet_id"), "ACTIVITY_LOG_SHEET_ID"),
		ConfigSheetID:      firstNonEmpty(viper.GetString("destinations.config_sheet_id"), "CONFIG_SHEET_ID"),
		IdeasFolderID:      firstNonEmpty(viper.GetString("destinations.ideas_folder_id"), "IDEAS_FOLDER_ID"),
		InboxDocID:         firstNonEmpty(viper.GetString("destinations.inbox_doc_id"), "INBOX_DOC_ID"),
		WebhookSecret:      firstNonEmpty(viper.GetString("server.webhook_secret"), "WEBHOOK_SECRET"),
		Backend:            firstNonEmpty(viper.GetString("store.backend"), "CAPTURE_BACKEND"),
		DatabasePath:       ExpandPath(viper.GetString("store.database")),
		Port:               DefaultPort,
	}

	if cfg.Backend == "" {
		cfg.Backend = BackendGoogle
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = ExpandPath("~/.local/share/capture/capture.db")
	}

	if p := viper.GetInt("server.port"); p > 0 {
		cfg.Port = p
	} else if p, err := strconv.Atoi(firstNonEmpty("", "PORT")); err == nil && p > 0 {
		cfg.Port = p
	}

	return cfg
}
