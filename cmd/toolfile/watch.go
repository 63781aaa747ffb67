package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newWatchCmd creates the watch command.
func (a *App) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rescan on changes and print the tool list until interrupted",
		Long: `Scan the tool directory, then keep watching it: whenever tool files
change, rescan and print the refreshed tool list. Stops on Ctrl+C.

Example:
  toolfile watch -d ./tools -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts, err := a.openToolset()
			if err != nil {
				return err
			}
			a.printNames(ts.Names())

			w, err := ts.Watch(func() {
				if err := ts.Rescan(); err != nil {
					a.logger.Warn("rescan failed", zap.Error(err))
					return
				}
				a.printNames(ts.Names())
			})
			if err != nil {
				return err
			}
			defer w.Close()

			fmt.Fprintf(a.stderr, "Watching %s. Press Ctrl+C to stop.\n", a.cfg.Dir)
			<-cmd.Context().Done()
			return nil
		},
	}
}
