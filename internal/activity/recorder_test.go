package activity

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/capture/internal/model"
	"github.com/Veraticus/capture/internal/testutil"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDestination(t *testing.T) {
	project := "CLI Tools"

	tests := []struct {
		name string
		want string
		c    model.Classification
	}{
		{name: "save link", c: model.Classification{Action: model.ActionSaveLink}, want: "Links Sheet"},
		{name: "new idea", c: model.Classification{Action: model.ActionNewIdea, Title: "Scaffolder"}, want: "Ideas Folder: Scaffolder"},
		{name: "project", c: model.Classification{Action: model.ActionAppendToProject, Project: &project}, want: "Project Doc: CLI Tools"},
		{name: "project absent", c: model.Classification{Action: model.ActionAppendToProject}, want: "Project Doc: unknown"},
		{name: "inbox", c: model.Classification{Action: model.ActionInbox}, want: "Inbox Doc"},
		{name: "unknown", c: model.Classification{Action: "archive"}, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Destination(tt.c))
		})
	}
}

func TestRecorder_Record(t *testing.T) {
	t.Run("success row", func(t *testing.T) {
		tables := testutil.NewMockTables()
		r := NewRecorder(tables, "activity", func() time.Time { return fixedNow }, nil)

		c := model.Classification{Action: model.ActionNewIdea, Title: "Idea", Tags: []string{"ai", "llm"}}
		r.Record(context.Background(), "idea for a thing", "ios", c, model.RunSuccess, "")

		appends := tables.Appends()
		require.Len(t, appends, 1)
		assert.Equal(t, "activity", appends[0].TableID)
		assert.Equal(t, Range, appends[0].Range)
		assert.Equal(t, []string{
			"2025-06-01T12:00:00.000Z",
			"idea for a thing",
			"ios",
			"new_idea",
			"ai, llm",
			"Ideas Folder: Idea",
			"success",
			"",
		}, appends[0].Cells)
	})

	t.Run("error row", func(t *testing.T) {
		tables := testutil.NewMockTables()
		r := NewRecorder(tables, "activity", func() time.Time { return fixedNow }, nil)

		r.Record(context.Background(), "raw", "ios", model.ErrorPlaceholder("raw"), model.RunError, "LINKS_SHEET_ID is not set")

		cells := tables.Appends()[0].Cells
		assert.Equal(t, "inbox", cells[3])
		assert.Equal(t, "", cells[4])
		assert.Equal(t, "Inbox Doc", cells[5])
		assert.Equal(t, "error", cells[6])
		assert.Equal(t, "LINKS_SHEET_ID is not set", cells[7])
	})

	t.Run("append failure is swallowed and logged", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		tables := testutil.NewMockTables()
		tables.AppendFunc = func(_ context.Context, _, _ string, _ []string) error {
			return errors.New("permission denied")
		}

		r := NewRecorder(tables, "activity", nil, logger)
		assert.NotPanics(t, func() {
			r.Record(context.Background(), "raw", "ios", model.FallbackClassification("raw"), model.RunSuccess, "")
		})
		assert.Contains(t, logs.String(), "Failed to write activity log")
		assert.Contains(t, logs.String(), "permission denied")
	})

	t.Run("missing sheet id skips write", func(t *testing.T) {
		var logs bytes.Buffer
		tables := testutil.NewMockTables()
		r := NewRecorder(tables, "", nil, slog.New(slog.NewTextHandler(&logs, nil)))

		r.Record(context.Background(), "raw", "ios", model.FallbackClassification("raw"), model.RunSuccess, "")
		assert.Empty(t, tables.Appends())
		assert.Contains(t, logs.String(), "ACTIVITY_LOG_SHEET_ID not set")
	})
}
