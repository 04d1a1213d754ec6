package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/model"
	"github.com/Veraticus/capture/internal/service"
)

// Inbox appends the capture and its classification to the inbox document.
type Inbox struct {
	docs  service.DocumentStore
	now   Clock
	docID string
}

// NewInbox creates the inbox handler.
func NewInbox(docs service.DocumentStore, docID string, now Clock) *Inbox {
	if now == nil {
		now = time.Now
	}
	return &Inbox{docs: docs, docID: docID, now: now}
}

// Handle implements Handler.
func (h *Inbox) Handle(ctx context.Context, c model.Classification, rawText, source string) error {
	if h.docID == "" {
		return common.MissingConfig("INBOX_DOC_ID")
	}

	if err := h.docs.AppendSection(ctx, h.docID, InboxSection(c, rawText, source, h.now())); err != nil {
		return fmt.Errorf("failed to append to inbox: %w", err)
	}
	return nil
}

// InboxSection renders an inbox entry. Project and URL lines appear only when
// the classification carries them.
func InboxSection(c model.Classification, rawText, source string, at time.Time) string {
	lines := []string{
		FormatMinute(at) + " [" + source + "]",
		"Confidence: " + FormatConfidence(c.Confidence),
		"Suggested action: " + string(c.SuggestedAction()),
		"Tags: " + FormatTags(c.Tags),
	}
	if c.Project != nil && *c.Project != "" {
		lines = append(lines, "Project: "+*c.Project)
	}
	if c.URL != nil && *c.URL != "" {
		lines = append(lines, "URL: "+*c.URL)
	}
	lines = append(lines,
		"",
		"Raw: "+rawText,
		"",
		"Parsed: "+c.Comment,
	)
	return strings.Join(lines, "\n")
}
