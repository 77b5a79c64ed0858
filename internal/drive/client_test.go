package drive

import (
	"testing"

	drive "google.golang.org/api/drive/v3"
)

func TestConvertToFileInfo(t *testing.T) {
	driveFile := &drive.File{
		Id:          "file123",
		Name:        "42_Weekly_Sync.txt",
		WebViewLink: "https://drive.google.com/file/d/file123/view",
	}

	fileInfo := convertToFileInfo(driveFile)

	if fileInfo.ID != "file123" {
		t.Errorf("Expected ID file123, got %s", fileInfo.ID)
	}
	if fileInfo.Name != "42_Weekly_Sync.txt" {
		t.Errorf("Expected Name 42_Weekly_Sync.txt, got %s", fileInfo.Name)
	}
	if fileInfo.WebViewLink != "https://drive.google.com/file/d/file123/view" {
		t.Errorf("Expected WebViewLink, got %s", fileInfo.WebViewLink)
	}
}

func TestConvertToFileInfoNil(t *testing.T) {
	if convertToFileInfo(nil) != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestConvertToFileInfoMinimal(t *testing.T) {
	fileInfo := convertToFileInfo(&drive.File{Id: "f1", Name: "7_untitled.txt"})

	if fileInfo.ID != "f1" {
		t.Errorf("Expected ID f1, got %s", fileInfo.ID)
	}
	if fileInfo.WebViewLink != "" {
		t.Errorf("Expected empty WebViewLink, got %s", fileInfo.WebViewLink)
	}
}
