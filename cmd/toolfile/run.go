package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-toolfile/toolfile"
)

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	var (
		name     string
		argsJSON string
	)

	cmd := &cobra.Command{
		Use:   "run [payload]",
		Short: "Dispatch one tool call and print the result",
		Long: `Dispatch one tool call against the scanned directory and print the
result as JSON.

The payload is the JSON a model produced, in any accepted shape. Alternatively
--name invokes a tool directly, with --args supplying the argument object.

Examples:
  # Full payload, as it came from the model
  toolfile run -d ./tools '{"name": "calc", "arguments": {"a": 1, "b": 2}}'

  # Doubly encoded arguments work too
  toolfile run -d ./tools '{"function_name": "calc", "parameters": "{\"a\": 1, \"b\": 2}"}'

  # Direct invocation without a payload
  toolfile run -d ./tools --name calc --args '{"a": 1, "b": 2}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			if len(argv) == 1 && name != "" {
				return errors.New("pass a payload argument or --name, not both")
			}
			if len(argv) == 0 && name == "" {
				return errors.New("provide a payload argument or --name")
			}
			if argsJSON != "" && name == "" {
				return errors.New("--args requires --name")
			}

			ts, err := a.openToolset()
			if err != nil {
				return err
			}

			var out any
			if name != "" {
				fallbackArgs := map[string]any{}
				if argsJSON != "" {
					if err := json.Unmarshal([]byte(argsJSON), &fallbackArgs); err != nil {
						return fmt.Errorf("parsing --args: %w", err)
					}
				}
				a.logger.Debug("dispatching direct call", zap.String("tool", name))
				out, err = ts.Run(nil, toolfile.WithFallback(name, fallbackArgs))
			} else {
				a.logger.Debug("dispatching payload", zap.Int("bytes", len(argv[0])))
				out, err = ts.Run(argv[0])
			}
			if err != nil {
				return err
			}
			printResult(a.stdout, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tool to invoke directly, skipping payload decoding")
	cmd.Flags().StringVar(&argsJSON, "args", "", "JSON object with arguments for --name")
	return cmd
}

// printResult renders a runner's result as indented JSON, falling back to
// plain formatting for values JSON cannot express.
func printResult(w io.Writer, out any) {
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%v\n", out)
		return
	}
	fmt.Fprintln(w, string(b))
}
