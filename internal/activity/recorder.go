// Package activity writes the append-only audit trail of pipeline runs.
package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/capture/internal/actions"
	"github.com/Veraticus/capture/internal/model"
	"github.com/Veraticus/capture/internal/service"
)

// Range is the append range of the activity table.
// Columns: Timestamp | Raw Input | Source | Parsed Action | Parsed Tags | Destination | Status | Error
const Range = "Sheet1!A:H"

// Recorder appends one row per pipeline run. Record never returns an error.
type Recorder struct {
	tables  service.TableStore
	now     actions.Clock
	logger  *slog.Logger
	sheetID string
}

// NewRecorder creates a recorder for the activity table sheetID. An empty
// sheetID disables recording.
func NewRecorder(tables service.TableStore, sheetID string, now actions.Clock, logger *slog.Logger) *Recorder {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{tables: tables, sheetID: sheetID, now: now, logger: logger}
}

// Record writes the audit row for one run. Failures are logged and dropped so
// they cannot mask or duplicate the run's own outcome.
func (r *Recorder) Record(ctx context.Context, rawText, source string, c model.Classification, status model.RunStatus, errMsg string) {
	rec := model.ActivityRecord{
		Timestamp:    r.now(),
		RawInput:     rawText,
		Source:       source,
		ParsedAction: c.Action,
		ParsedTags:   c.Tags,
		Destination:  Destination(c),
		Status:       status,
		ErrorMessage: errMsg,
	}

	if r.sheetID == "" {
		r.logger.Error("ACTIVITY_LOG_SHEET_ID not set, skipping activity log",
			"action", rec.ParsedAction,
			"status", rec.Status)
		return
	}

	if err := r.tables.AppendRow(ctx, r.sheetID, Range, Row(rec)); err != nil {
		r.logger.Error("Failed to write activity log",
			"error", err,
			"action", rec.ParsedAction,
			"status", rec.Status)
	}
}

// Row renders rec as activity table cells.
func Row(rec model.ActivityRecord) []string {
	return []string{
		actions.FormatInstant(rec.Timestamp),
		rec.RawInput,
		rec.Source,
		string(rec.ParsedAction),
		actions.JoinTags(rec.ParsedTags),
		rec.Destination,
		string(rec.Status),
		rec.ErrorMessage,
	}
}

// Destination is the human-readable label for where c was routed.
func Destination(c model.Classification) string {
	switch c.Action {
	case model.ActionSaveLink:
		return "Links Sheet"
	case model.ActionNewIdea:
		return "Ideas Folder: " + c.Title
	case model.ActionAppendToProject:
		if c.Project == nil {
			return "Project Doc: unknown"
		}
		return "Project Doc: " + *c.Project
	case model.ActionInbox:
		return "Inbox Doc"
	default:
		return "unknown"
	}
}
