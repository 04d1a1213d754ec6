package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/model"
	"github.com/Veraticus/capture/internal/service"
)

// LinksRange is the append range of the links table.
// Columns: Date | URL | Comment | Tags | Source Project | Raw Input
const LinksRange = "Sheet1!A:F"

// SaveLink appends a row to the links table.
type SaveLink struct {
	tables  service.TableStore
	now     Clock
	sheetID string
}

// NewSaveLink creates the save_link handler.
func NewSaveLink(tables service.TableStore, sheetID string, now Clock) *SaveLink {
	if now == nil {
		now = time.Now
	}
	return &SaveLink{tables: tables, sheetID: sheetID, now: now}
}

// Handle implements Handler.
func (h *SaveLink) Handle(ctx context.Context, c model.Classification, rawText, _ string) error {
	if h.sheetID == "" {
		return common.MissingConfig("LINKS_SHEET_ID")
	}

	row := []string{
		FormatInstant(h.now()),
		c.URLValue(),
		c.Comment,
		JoinTags(c.Tags),
		c.ProjectValue(),
		rawText,
	}
	if err := h.tables.AppendRow(ctx, h.sheetID, LinksRange, row); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	return nil
}
