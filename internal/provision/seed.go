package provision

import (
	"context"
	"fmt"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/model"
	"github.com/Veraticus/capture/internal/registry"
	"github.com/Veraticus/capture/internal/service"
)

// DefaultProjects are starter projects meant to be replaced.
func DefaultProjects() []model.Project {
	return []model.Project{
		{Name: "Smart Router", Status: "active", Description: "Voice capture and knowledge routing system"},
		{Name: "Personal Site", Status: "active", Description: "Personal website and blog"},
		{Name: "CLI Tools", Status: "active", Description: "Collection of command-line utilities"},
		{Name: "Learning Notes", Status: "active", Description: "Notes from courses, books, and tutorials"},
		{Name: "Side Projects", Status: "idea", Description: "Backlog of side project ideas"},
	}
}

// DefaultTags are starter tags grouped by category.
func DefaultTags() []model.Tag {
	return []model.Tag{
		{Name: "typescript", Category: "language"},
		{Name: "rust", Category: "language"},
		{Name: "python", Category: "language"},
		{Name: "go", Category: "language"},
		{Name: "react", Category: "framework"},
		{Name: "express", Category: "framework"},
		{Name: "api", Category: "architecture"},
		{Name: "database", Category: "architecture"},
		{Name: "devops", Category: "infrastructure"},
		{Name: "docker", Category: "infrastructure"},
		{Name: "gcp", Category: "infrastructure"},
		{Name: "testing", Category: "practice"},
		{Name: "performance", Category: "practice"},
		{Name: "security", Category: "practice"},
		{Name: "ai", Category: "topic"},
		{Name: "llm", Category: "topic"},
		{Name: "web", Category: "topic"},
		{Name: "mobile", Category: "topic"},
		{Name: "tooling", Category: "topic"},
	}
}

// SeedResult counts the rows Seed appended.
type SeedResult struct {
	Projects int
	Tags     int
}

// Seed appends projects and tags to the config table configSheetID. onRow,
// when set, is called after each appended row.
func Seed(ctx context.Context, tables service.TableStore, configSheetID string, projects []model.Project, tags []model.Tag, onRow func()) (SeedResult, error) {
	var res SeedResult
	if configSheetID == "" {
		return res, common.MissingConfig("CONFIG_SHEET_ID")
	}
	if onRow == nil {
		onRow = func() {}
	}

	for _, p := range projects {
		if err := tables.AppendRow(ctx, configSheetID, registry.ProjectsAppendRange, p.Row()); err != nil {
			return res, fmt.Errorf("failed to seed project %q: %w", p.Name, err)
		}
		res.Projects++
		onRow()
	}
	for _, t := range tags {
		if err := tables.AppendRow(ctx, configSheetID, registry.TagsAppendRange, t.Row()); err != nil {
			return res, fmt.Errorf("failed to seed tag %q: %w", t.Name, err)
		}
		res.Tags++
		onRow()
	}
	return res, nil
}
