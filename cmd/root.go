package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the fathomsync application
var rootCmd = &cobra.Command{
	Use:   "fathomsync",
	Short: "Syncs Fathom meeting transcripts to Google Drive and Sheets",
	Long: `fathomsync polls the Fathom API for meeting recordings, uploads each
new transcript as a text document to Google Drive, and appends an index
row to a Google Sheets spreadsheet.

Already-synced recordings are tracked in a local state file, so every
run is idempotent and safe to repeat.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "fathomsync version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
