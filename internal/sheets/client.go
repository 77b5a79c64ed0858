package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/fathomsync/fathomsync/internal/google"
)

// Client wraps the Google Sheets API service
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	rangeA1       string
}

// NewClient creates a new Google Sheets client with OAuth2 authentication.
// rangeA1 names the sheet and columns rows are appended under, e.g.
// "Sheet1!A:B". Returns an error if no valid token exists - use
// google.HasToken() to check first
func NewClient(ctx context.Context, spreadsheetID, rangeA1 string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	httpClient, err := google.GetHTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		service:       sheetsService,
		spreadsheetID: spreadsheetID,
		rangeA1:       rangeA1,
	}, nil
}

// AppendRow appends one [displayDate, link] row after the last row of the
// configured range
func (c *Client) AppendRow(ctx context.Context, displayDate, link string) error {
	body := &sheets.ValueRange{
		Values: [][]interface{}{{displayDate, link}},
	}

	_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, c.rangeA1, body).
		Context(ctx).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}

	return nil
}
