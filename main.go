// Command responder checks a LinkedIn inbox for job-related outreach,
// drafts replies, and sends them after approval.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagTemplates  string
	flagDryRun     bool
	flagUnattended bool
)

var rootCmd = &cobra.Command{
	Use:   "responder",
	Short: "LinkedIn job-outreach auto-responder",
	Long: "responder checks a LinkedIn inbox for unread messages, classifies job-related\n" +
		"outreach, drafts a reply (AI-generated with template fallback), and sends it\n" +
		"after human approval or an explicit unattended policy.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Unable to load .env file; falling back to existing environment variables")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTemplates, "templates", "",
		"path to a JSON reply template file (overrides RESPONSE_TEMPLATES)")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false,
		"go through the full cycle but log replies instead of sending them")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(templatesCmd)
}
