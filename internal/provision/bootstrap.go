// Package provision creates the folders, tables and documents the capture
// pipeline writes to, and seeds the config registry.
package provision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/capture/internal/service"
)

// Names of the provisioned resources.
const (
	RootFolderName         = "Voice Capture System"
	ProjectNotesFolderName = "Project Notes"
	IdeasFolderName        = "Project Ideas"
	SystemFolderName       = "System"
	ConfigTableName        = "Config"
	LinksTableName         = "Saved Links"
	ActivityLogTableName   = "Activity Log"
	InboxDocName           = "Inbox"
)

// Table layouts. The link and activity tables keep the provider's default tab.
var (
	ConfigTabs = []service.TabSpec{
		{Name: "Projects", Header: []string{"Project Name", "Doc ID", "Status", "Description"}},
		{Name: "Tags", Header: []string{"Tag Name", "Category"}},
	}
	LinksTabs = []service.TabSpec{
		{Name: "Sheet1", Header: []string{"Date", "URL", "Comment", "Tags", "Source Project", "Raw Input"}},
	}
	ActivityLogTabs = []service.TabSpec{
		{Name: "Sheet1", Header: []string{"Timestamp", "Raw Input", "Source", "Parsed Action", "Parsed Tags", "Destination", "Status", "Error"}},
	}
)

// Layout holds the ids of everything Bootstrap created.
type Layout struct {
	RootFolderID         string
	ProjectNotesFolderID string
	IdeasFolderID        string
	SystemFolderID       string
	ConfigSheetID        string
	LinksSheetID         string
	ActivityLogSheetID   string
	InboxDocID           string
}

// EnvLines renders the layout as environment assignments for a .env file.
func (l Layout) EnvLines() []string {
	return []string{
		"CONFIG_SHEET_ID=" + l.ConfigSheetID,
		"LINKS_SHEET_ID=" + l.LinksSheetID,
		"ACTIVITY_LOG_SHEET_ID=" + l.ActivityLogSheetID,
		"IDEAS_FOLDER_ID=" + l.IdeasFolderID,
		"INBOX_DOC_ID=" + l.InboxDocID,
	}
}

// Step names one resource Bootstrap created.
type Step struct {
	Name string
	ID   string
}

// BootstrapSteps is the number of resources Bootstrap creates.
const BootstrapSteps = 8

// Bootstrapper creates the workspace layout on a provisioner.
type Bootstrapper struct {
	store  service.Provisioner
	logger *slog.Logger
	onStep func(Step)
}

// NewBootstrapper creates a bootstrapper. onStep, when set, is called after
// each resource is created.
func NewBootstrapper(store service.Provisioner, logger *slog.Logger, onStep func(Step)) *Bootstrapper {
	if logger == nil {
		logger = slog.Default()
	}
	if onStep == nil {
		onStep = func(Step) {}
	}
	return &Bootstrapper{store: store, logger: logger, onStep: onStep}
}

// Bootstrap creates the root folder under parentID (empty for the top level)
// and everything beneath it. It stops at the first failure; resources created
// before it are left in place.
func (b *Bootstrapper) Bootstrap(ctx context.Context, parentID string) (*Layout, error) {
	var l Layout
	var err error

	if l.RootFolderID, err = b.folder(ctx, parentID, RootFolderName); err != nil {
		return nil, err
	}
	if l.ProjectNotesFolderID, err = b.folder(ctx, l.RootFolderID, ProjectNotesFolderName); err != nil {
		return nil, err
	}
	if l.IdeasFolderID, err = b.folder(ctx, l.RootFolderID, IdeasFolderName); err != nil {
		return nil, err
	}
	if l.SystemFolderID, err = b.folder(ctx, l.RootFolderID, SystemFolderName); err != nil {
		return nil, err
	}
	if l.ConfigSheetID, err = b.table(ctx, l.SystemFolderID, ConfigTableName, ConfigTabs); err != nil {
		return nil, err
	}
	if l.LinksSheetID, err = b.table(ctx, l.SystemFolderID, LinksTableName, LinksTabs); err != nil {
		return nil, err
	}
	if l.ActivityLogSheetID, err = b.table(ctx, l.SystemFolderID, ActivityLogTableName, ActivityLogTabs); err != nil {
		return nil, err
	}
	if l.InboxDocID, err = b.store.CreateDocument(ctx, l.SystemFolderID, InboxDocName, ""); err != nil {
		return nil, fmt.Errorf("failed to create %s document: %w", InboxDocName, err)
	}
	b.done(InboxDocName, l.InboxDocID)

	return &l, nil
}

func (b *Bootstrapper) folder(ctx context.Context, parentID, name string) (string, error) {
	id, err := b.store.CreateFolder(ctx, parentID, name)
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	b.done(name, id)
	return id, nil
}

func (b *Bootstrapper) table(ctx context.Context, parentID, name string, tabs []service.TabSpec) (string, error) {
	id, err := b.store.CreateTable(ctx, parentID, name, tabs)
	if err != nil {
		return "", fmt.Errorf("failed to create table %q: %w", name, err)
	}
	b.done(name, id)
	return id, nil
}

func (b *Bootstrapper) done(name, id string) {
	b.logger.Info("provisioned", "name", name, "id", id)
	b.onStep(Step{Name: name, ID: id})
}
