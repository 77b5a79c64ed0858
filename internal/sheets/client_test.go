package sheets

import (
	"context"
	"testing"
)

func TestNewClientRequiresSpreadsheetID(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "Sheet1!A:B"); err == nil {
		t.Error("NewClient() should fail with empty spreadsheet ID")
	}
}
