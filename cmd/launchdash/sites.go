package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/example/launchdash/internal/config"
	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/summary"
)

func newSitesCommand(opts *config.Options, globals *globalOptions) *cobra.Command {
	output := "table"
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Summarise launches and success rates per site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			logger, err := globals.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ds, err := dataset.Load(commandContext(cmd), opts.DataPath)
			if err != nil {
				return err
			}
			logger.V(1).Info("dataset loaded", "path", opts.DataPath, "records", ds.Len())
			rows := summary.Compute(ds)
			out := cmd.OutOrStdout()
			switch strings.ToLower(output) {
			case "table", "":
				return summary.PrintTable(out, rows, colorEnabled(out))
			case "yaml", "yml":
				return summary.WriteYAML(out, rows)
			case "json":
				return summary.WriteJSON(out, rows)
			default:
				return fmt.Errorf("unsupported output %q (expected table, yaml, or json)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "Output format: table, yaml, or json")
	return cmd
}

// colorEnabled reports whether w is a terminal that should receive colour.
func colorEnabled(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
