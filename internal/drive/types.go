package drive

// FileInfo represents metadata about an uploaded file in Google Drive
type FileInfo struct {
	// ID is the unique identifier for the file
	ID string `json:"id"`

	// Name is the name of the file
	Name string `json:"name"`

	// WebViewLink is a link for opening the file in the Drive viewer
	WebViewLink string `json:"webViewLink,omitempty"`
}
