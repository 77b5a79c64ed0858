// Package cmd implements the command-line interface for fathomsync.
//
// This package provides the following commands:
//   - serve: Run the sync service continuously on a fixed interval
//   - sync: Run a single reconciliation pass and exit
//   - auth: Authorize access to Google Drive and Sheets
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
