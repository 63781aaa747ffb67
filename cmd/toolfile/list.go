package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListCmd creates the list command.
func (a *App) newListCmd() *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Scan the tool directory and print what it provides",
		Long: `Scan the tool directory and print every registered tool with its
definition, in name order.

Examples:
  # All tools under ./tools with their definitions
  toolfile list -d ./tools

  # Names only, one per line
  toolfile list -d ./tools --names-only

  # JavaScript tools, two directory levels deep
  toolfile list -d ./tools --engine js --max-depth 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts, err := a.openToolset()
			if err != nil {
				return err
			}

			names := ts.Names()
			if len(names) == 0 {
				fmt.Fprintln(a.stdout, "No tools found.")
				return nil
			}
			if namesOnly {
				for _, name := range names {
					fmt.Fprintln(a.stdout, name)
				}
				return nil
			}

			defs := ts.Definitions()
			for i, name := range names {
				if i > 0 {
					fmt.Fprintln(a.stdout)
				}
				fmt.Fprintf(a.stdout, "%s\n%s\n", name, defs[name])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names-only", false, "Print tool names only")
	return cmd
}
