// Package registry loads the known projects and tags from the config table.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/model"
	"github.com/Veraticus/capture/internal/service"
)

// Ranges read from the config table. Row 1 of each tab is a header.
const (
	ProjectsRange = "Projects!A2:D"
	TagsRange     = "Tags!A2:B"
	// ProjectsAppendRange is where newly created ideas are registered.
	ProjectsAppendRange = "Projects!A:D"
	TagsAppendRange     = "Tags!A:B"
)

// Loader reads a fresh Registry on every call. Nothing is cached.
type Loader struct {
	tables  service.TableStore
	logger  *slog.Logger
	sheetID string
	retry   service.RetryOptions
}

// NewLoader creates a loader for the config table sheetID.
func NewLoader(tables service.TableStore, sheetID string, retry service.RetryOptions, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		tables:  tables,
		sheetID: sheetID,
		retry:   retry,
		logger:  logger,
	}
}

// Load reads projects and tags concurrently. Short rows are padded with
// empty strings.
func (l *Loader) Load(ctx context.Context) (model.Registry, error) {
	if l.sheetID == "" {
		return model.Registry{}, common.MissingConfig("CONFIG_SHEET_ID")
	}

	var projectRows, tagRows [][]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := l.read(gctx, ProjectsRange)
		projectRows = rows
		return err
	})
	g.Go(func() error {
		rows, err := l.read(gctx, TagsRange)
		tagRows = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Registry{}, err
	}

	reg := model.Registry{
		Projects: make([]model.Project, 0, len(projectRows)),
		Tags:     make([]model.Tag, 0, len(tagRows)),
	}
	// Rows with a blank name are spacer rows in the sheet.
	for _, row := range projectRows {
		if p := model.ProjectFromRow(row); strings.TrimSpace(p.Name) != "" {
			reg.Projects = append(reg.Projects, p)
		}
	}
	for _, row := range tagRows {
		if t := model.TagFromRow(row); strings.TrimSpace(t.Name) != "" {
			reg.Tags = append(reg.Tags, t)
		}
	}

	l.logger.Debug("loaded registry", "projects", len(reg.Projects), "tags", len(reg.Tags))
	return reg, nil
}

func (l *Loader) read(ctx context.Context, rng string) ([][]string, error) {
	var rows [][]string
	err := common.WithRetry(ctx, func() error {
		var err error
		rows, err = l.tables.ReadRows(ctx, l.sheetID, rng)
		return err
	}, l.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", rng, err)
	}
	return rows, nil
}
