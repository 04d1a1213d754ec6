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

// RegistryLoader provides a fresh registry snapshot.
type RegistryLoader interface {
	Load(ctx context.Context) (model.Registry, error)
}

// AppendToProject appends a note to an existing project's document.
type AppendToProject struct {
	docs     service.DocumentStore
	registry RegistryLoader
	now      Clock
}

// NewAppendToProject creates the append_to_project handler.
func NewAppendToProject(docs service.DocumentStore, registry RegistryLoader, now Clock) *AppendToProject {
	if now == nil {
		now = time.Now
	}
	return &AppendToProject{docs: docs, registry: registry, now: now}
}

// Handle implements Handler. The registry is re-read so the lookup sees the
// current document ids.
func (h *AppendToProject) Handle(ctx context.Context, c model.Classification, _, _ string) error {
	if c.Project == nil || strings.TrimSpace(*c.Project) == "" {
		return common.ErrProjectNameMissing
	}

	reg, err := h.registry.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	project, ok := reg.FindProject(*c.Project)
	if !ok || project.DocID == "" {
		return fmt.Errorf("%w: %q", common.ErrProjectNotFound, *c.Project)
	}

	if err := h.docs.AppendSection(ctx, project.DocID, ProjectSection(c, h.now())); err != nil {
		return fmt.Errorf("failed to append to project %q: %w", project.Name, err)
	}
	return nil
}

// ProjectSection renders a timestamped note for a project document.
func ProjectSection(c model.Classification, at time.Time) string {
	return strings.Join([]string{
		FormatMinute(at),
		"Tags: " + FormatTags(c.Tags),
		"",
		c.Comment,
	}, "\n")
}
