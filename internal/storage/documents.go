package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/service"
)

// Document is a stored document.
type Document struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	ParentID  string
	Title     string
	Body      string
}

// CreateDocument creates a document with body under parentID.
func (s *SQLiteStore) CreateDocument(ctx context.Context, parentID, title, body string) (string, error) {
	if err := validateString(title, "title"); err != nil {
		return "", err
	}
	if err := s.requireFolder(ctx, s.db, parentID); err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := s.now().UTC()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, parent_id, title, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, nullable(parentID), title, body, now, now); err != nil {
		return "", fmt.Errorf("failed to create document %q: %w", title, err)
	}

	s.logger.Debug("created document", "id", id, "title", title)
	return id, nil
}

// AppendSection appends the separator and text to the end of docID.
func (s *SQLiteStore) AppendSection(ctx context.Context, docID, text string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET body = body || ?, updated_at = ? WHERE id = ?`,
		service.SectionText(text), s.now().UTC(), docID)
	if err != nil {
		return fmt.Errorf("failed to append to document %s: %w", docID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to append to document %s: %w", docID, err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", docID, common.ErrNotFound)
	}
	return nil
}

// GetDocument returns the document with id.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*Document, error) {
	var (
		doc      Document
		parentID sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, parent_id, title, body, created_at, updated_at FROM documents WHERE id = ?`, id).
		Scan(&doc.ID, &parentID, &doc.Title, &doc.Body, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	doc.ParentID = parentID.String
	return &doc, nil
}
