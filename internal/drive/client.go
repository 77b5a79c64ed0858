package drive

import (
	"context"
	"fmt"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/fathomsync/fathomsync/internal/google"
)

const transcriptMimeType = "text/plain"

// Client wraps the Google Drive API service
type Client struct {
	service  *drive.Service
	folderID string
}

// NewClient creates a new Google Drive client with OAuth2 authentication.
// Uploads land in folderID when it is non-empty, otherwise in the Drive
// root. Returns an error if no valid token exists - use google.HasToken()
// to check first
func NewClient(ctx context.Context, folderID string) (*Client, error) {
	httpClient, err := google.GetHTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		service:  driveService,
		folderID: folderID,
	}, nil
}

// UploadTranscript creates a plain-text file with the given name and
// content in the configured folder
func (c *Client) UploadTranscript(ctx context.Context, filename, content string) (*FileInfo, error) {
	if filename == "" {
		return nil, fmt.Errorf("file name is required")
	}

	file := &drive.File{
		Name:     filename,
		MimeType: transcriptMimeType,
	}
	if c.folderID != "" {
		file.Parents = []string{c.folderID}
	}

	driveFile, err := c.service.Files.Create(file).
		Context(ctx).
		Media(strings.NewReader(content), googleapi.ContentType(transcriptMimeType)).
		Fields("id, name, webViewLink").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return convertToFileInfo(driveFile), nil
}

func convertToFileInfo(f *drive.File) *FileInfo {
	if f == nil {
		return nil
	}
	return &FileInfo{
		ID:          f.Id,
		Name:        f.Name,
		WebViewLink: f.WebViewLink,
	}
}
