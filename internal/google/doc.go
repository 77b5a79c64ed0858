// Package google handles OAuth2 authentication for the Google APIs the
// sync service writes to (Drive and Sheets). Tokens are cached on disk
// under the user cache directory and refreshed automatically.
package google
