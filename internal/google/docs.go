package google

import (
	"context"
	"fmt"

	"google.golang.org/api/docs/v1"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/service"
)

// CreateDocument creates a document, inserts body at the start and moves it
// under parentID.
func (c *Client) CreateDocument(ctx context.Context, parentID, title, body string) (string, error) {
	doc, err := c.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", classifyAPIError(fmt.Errorf("failed to create document %q: %w", title, err))
	}
	if doc.DocumentId == "" {
		return "", fmt.Errorf("%w: %q", common.ErrDocumentNotCreated, title)
	}

	if body != "" {
		if err := c.insertText(ctx, doc.DocumentId, 1, body); err != nil {
			return "", err
		}
	}

	if err := c.moveToFolder(ctx, doc.DocumentId, parentID); err != nil {
		return "", err
	}

	c.logger.Debug("created document", "title", title, "id", doc.DocumentId, "parent", parentID)
	return doc.DocumentId, nil
}

// AppendSection inserts the separator and text just before the document's
// final newline. The end index is read and then written without locking, so
// concurrent appends to one document may interleave.
func (c *Client) AppendSection(ctx context.Context, docID, text string) error {
	doc, err := c.docs.Documents.Get(docID).Context(ctx).Do()
	if err != nil {
		return classifyAPIError(fmt.Errorf("failed to read document %s: %w", docID, err))
	}

	return c.insertText(ctx, docID, max(endIndex(doc)-1, 1), service.SectionText(text))
}

func (c *Client) insertText(ctx context.Context, docID string, index int64, text string) error {
	_, err := c.docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: index},
				Text:     text,
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return classifyAPIError(fmt.Errorf("failed to insert text into %s: %w", docID, err))
	}
	return nil
}

// endIndex returns the end index of the last structural element, or 1 for an
// empty body.
func endIndex(doc *docs.Document) int64 {
	if doc.Body == nil || len(doc.Body.Content) == 0 {
		return 1
	}
	last := doc.Body.Content[len(doc.Body.Content)-1]
	if last == nil || last.EndIndex < 1 {
		return 1
	}
	return last.EndIndex
}
