package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fathomsync/fathomsync/internal/google"
)

func newAuthCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Drive and Sheets",
		Long: `Run the OAuth authorization flow for the Google APIs the service
writes to. Opens nothing automatically: visit the printed URL in a
browser, grant access, and paste the authorization code back here.

The resulting token is cached on disk and refreshed automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if google.HasToken() && !force {
				fmt.Println("A Google OAuth token already exists. Use --force to re-authorize.")
				return nil
			}

			fmt.Println("Visit the following URL to authorize access:")
			fmt.Println()
			fmt.Println("  " + google.GetAuthURL())
			fmt.Println()
			fmt.Print("Enter the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveToken(context.Background(), code); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			fmt.Println("Authorization successful. Token saved.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-authorize even if a token already exists")
	return cmd
}
