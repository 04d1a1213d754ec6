package actions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/model"
	"github.com/Veraticus/capture/internal/registry"
	"github.com/Veraticus/capture/internal/service"
)

// IdeaStatus is the registry status given to newly captured ideas.
const IdeaStatus = "idea"

// NewIdea creates a document for the idea and registers it as a project.
type NewIdea struct {
	docs          service.DocumentStore
	tables        service.TableStore
	now           Clock
	logger        *slog.Logger
	folderID      string
	configSheetID string
}

// NewNewIdea creates the new_idea handler. An empty configSheetID skips
// registration.
func NewNewIdea(docs service.DocumentStore, tables service.TableStore, folderID, configSheetID string, now Clock, logger *slog.Logger) *NewIdea {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NewIdea{
		docs:          docs,
		tables:        tables,
		folderID:      folderID,
		configSheetID: configSheetID,
		now:           now,
		logger:        logger,
	}
}

// Handle implements Handler.
func (h *NewIdea) Handle(ctx context.Context, c model.Classification, _, _ string) error {
	if h.folderID == "" {
		return common.MissingConfig("IDEAS_FOLDER_ID")
	}

	docID, err := h.docs.CreateDocument(ctx, h.folderID, c.Title, IdeaBody(c, h.now()))
	if err != nil {
		return fmt.Errorf("failed to create idea document: %w", err)
	}

	if h.configSheetID == "" {
		h.logger.Debug("CONFIG_SHEET_ID not set, idea not registered", "doc_id", docID)
		return nil
	}

	project := model.Project{Name: c.Title, DocID: docID, Status: IdeaStatus, Description: c.Comment}
	if err := h.tables.AppendRow(ctx, h.configSheetID, registry.ProjectsAppendRange, project.Row()); err != nil {
		return fmt.Errorf("failed to register idea %q: %w", c.Title, err)
	}
	return nil
}

// IdeaBody renders the initial content of an idea document.
func IdeaBody(c model.Classification, created time.Time) string {
	return strings.Join([]string{
		"# " + c.Title,
		"",
		"Tags: " + FormatTags(c.Tags),
		"Created: " + FormatInstant(created),
		"",
		"---",
		"",
		c.Comment,
	}, "\n")
}
