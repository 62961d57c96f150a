package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/astegaru/linkedin-responder/schedule"
)

// watchCmd runs the scheduler loop until SIGINT/SIGTERM. A clean shutdown
// exits 0; exhausting the consecutive-failure ceiling exits non-zero.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check the inbox on a schedule inside active hours",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := app.cfg
		fmt.Printf("🚀 Starting watch loop: every %s between %02d:00 and %02d:00 (%s)\n",
			cfg.CheckInterval, cfg.ActiveHoursStart, cfg.ActiveHoursEnd, cfg.Location)

		sched := schedule.New(cfg.CheckInterval, cfg.ActiveHoursStart, cfg.ActiveHoursEnd,
			cfg.Location, cfg.MaxConsecutiveFailures)

		err = sched.Run(ctx, func(ctx context.Context) error {
			// Templates may change on disk; pick changes up between cycles,
			// never during one.
			if err := app.templates.Reload(); err != nil {
				fmt.Printf("⚠️ Template reload failed, keeping previous set: %v\n", err)
			}
			return app.runCycle(ctx)
		})
		if err != nil {
			return err
		}

		fmt.Println("👋 Shutting down cleanly")
		return nil
	},
}
