package main

import (
	"github.com/spf13/cobra"
)

// runCmd performs a single inbox cycle and exits: 0 on success, non-zero on
// a fatal error.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Check the inbox once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.close()

		return app.runCycle(cmd.Context())
	},
}

func init() {
	runCmd.Flags().BoolVar(&flagUnattended, "unattended", false,
		"apply the unattended approval policy instead of prompting (overrides NON_INTERACTIVE)")
}
