// Package service defines the capability interfaces the capture pipeline depends on.
// Every implementation is constructed once at startup and injected; nothing reaches
// for a package-level client.
package service

import (
	"context"
	"time"
)

// TableStore reads and appends rows of a spreadsheet-like table.
type TableStore interface {
	// ReadRows returns the rows of rng in tableID. Rows shorter than the range are
	// returned as-is; callers treat missing trailing cells as empty.
	ReadRows(ctx context.Context, tableID, rng string) ([][]string, error)
	// AppendRow appends one row of cells after the last row of rng.
	AppendRow(ctx context.Context, tableID, rng string, cells []string) error
}

// DocumentStore creates documents and appends sections to them.
type DocumentStore interface {
	// CreateDocument creates a document titled title with the given body,
	// placed under parentID when it is non-empty, and returns its id.
	CreateDocument(ctx context.Context, parentID, title, body string) (string, error)
	// AppendSection appends a separator followed by text at the end of docID.
	AppendSection(ctx context.Context, docID, text string) error
}

// TabSpec describes one tab of a spreadsheet created during provisioning.
type TabSpec struct {
	Name   string
	Header []string
}

// Provisioner creates the folders, tables and documents the pipeline writes to.
type Provisioner interface {
	CreateFolder(ctx context.Context, parentID, name string) (string, error)
	CreateTable(ctx context.Context, parentID, name string, tabs []TabSpec) (string, error)
	CreateDocument(ctx context.Context, parentID, title, body string) (string, error)
}

// Store bundles the capabilities a single backend provides.
type Store interface {
	TableStore
	DocumentStore
	Provisioner
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// SectionSeparator precedes every appended document section.
const SectionSeparator = "\n---\n"

// SectionText is the exact text AppendSection inserts for text.
func SectionText(text string) string {
	return SectionSeparator + text + "\n"
}
