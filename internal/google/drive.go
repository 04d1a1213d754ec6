package google

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"

	"github.com/Veraticus/capture/internal/common"
)

const folderMimeType = "application/vnd.google-apps.folder"

// CreateFolder creates a Drive folder under parentID, or at the root of My
// Drive when parentID is empty.
func (c *Client) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	folder := &drive.File{Name: name, MimeType: folderMimeType}
	if parentID != "" {
		folder.Parents = []string{parentID}
	}

	created, err := c.drive.Files.Create(folder).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	if created.Id == "" {
		return "", fmt.Errorf("%w: folder %q", common.ErrDocumentNotCreated, name)
	}

	c.logger.Debug("created folder", "name", name, "id", created.Id)
	return created.Id, nil
}

func (c *Client) moveToFolder(ctx context.Context, fileID, folderID string) error {
	if folderID == "" {
		return nil
	}

	_, err := c.drive.Files.Update(fileID, &drive.File{}).
		AddParents(folderID).
		Fields("id, parents").
		Context(ctx).
		Do()
	if err != nil {
		return classifyAPIError(fmt.Errorf("failed to move %s into folder %s: %w", fileID, folderID, err))
	}
	return nil
}
