package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/astegaru/linkedin-responder/config"
	"github.com/astegaru/linkedin-responder/template"
)

// templatesCmd prints the configured reply templates per category, so an
// operator can review what the fallback path would send.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the configured reply templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagTemplates
		if path == "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path = cfg.TemplatesPath
		}

		store, err := template.Load(path)
		if err != nil {
			return err
		}

		if path == "" {
			pterm.Info.Println("No template file configured, showing built-in defaults")
		} else {
			pterm.Info.Printf("Templates loaded from %s\n", path)
		}

		for _, cat := range store.Categories() {
			pterm.DefaultSection.Println(string(cat))
			for i, variant := range store.Variants(cat) {
				fmt.Printf("  %d. %s\n", i+1, variant)
				if vars := template.ExtractVariables(variant); len(vars) > 0 {
					fmt.Printf("     variables: %v\n", vars)
				}
			}
		}
		return nil
	},
}
