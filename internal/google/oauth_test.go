package google

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestTokenFilePath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	got := tokenFilePath()
	if filepath.Base(got) != "google.token" {
		t.Errorf("tokenFilePath() = %v, want base google.token", got)
	}
	if !strings.Contains(got, "fathomsync") {
		t.Errorf("tokenFilePath() = %v, should live under the fathomsync cache dir", got)
	}
}

func TestHasTokenMissing(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if HasToken() {
		t.Error("HasToken() should return false when no token file exists")
	}
}

func TestGetTokenSourceMissing(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if _, err := GetTokenSource(context.Background()); err == nil {
		t.Error("GetTokenSource() should fail when no token file exists")
	}
}

func TestGetAuthURL(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "test-client")

	url := GetAuthURL()
	if url == "" {
		t.Fatal("GetAuthURL() should return non-empty URL")
	}
	if !strings.Contains(url, "test-client") {
		t.Errorf("GetAuthURL() = %v, should carry the client id", url)
	}
	if !strings.Contains(url, "spreadsheets") {
		t.Errorf("GetAuthURL() = %v, should request the Sheets scope", url)
	}
}
