// Package drive uploads transcript documents to Google Drive.
//
// The client wraps the Drive v3 API and exposes the single operation the
// sync engine needs: creating a plain-text file inside the configured
// folder and returning its id and web link.
//
// OAuth Authentication:
// This package uses the unified Google OAuth token from the google package.
// The drive.file scope is sufficient since the service only touches files
// it created itself.
package drive
