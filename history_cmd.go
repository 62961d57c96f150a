package main

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/astegaru/linkedin-responder/config"
	"github.com/astegaru/linkedin-responder/persistence"
)

var flagHistoryLimit int

// historyCmd prints recent cycle summaries from the run-record log.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent cycle summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := persistence.NewStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.RecentRuns(flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			pterm.Info.Println("No cycles recorded yet")
			return nil
		}

		rows := pterm.TableData{{"started", "duration", "seen", "sent", "skipped", "failed"}}
		for _, r := range runs {
			rows = append(rows, []string{
				r.StartedAt.Format("2006-01-02 15:04"),
				r.Duration().Round(time.Second).String(),
				strconv.Itoa(r.Seen),
				strconv.Itoa(r.Sent),
				strconv.Itoa(r.Skipped),
				strconv.Itoa(r.Failed),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "number of cycles to show")
	rootCmd.AddCommand(historyCmd)
}
