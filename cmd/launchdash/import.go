package main

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/example/launchdash/internal/config"
	"github.com/example/launchdash/internal/dataset"
)

func newImportCommand(opts *config.Options, globals *globalOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Snapshot the loaded launch records into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return fmt.Errorf("--out is required")
			}
			path, err := homedir.Expand(strings.TrimSpace(out))
			if err != nil {
				return fmt.Errorf("expand output path: %w", err)
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			logger, err := globals.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			ds, err := dataset.Load(ctx, opts.DataPath)
			if err != nil {
				return err
			}
			if err := dataset.WriteSQLite(ctx, path, ds); err != nil {
				return err
			}
			logger.V(1).Info("snapshot written", "out", path, "records", ds.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d launch records to %s\n", ds.Len(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "SQLite database to write (e.g. launches.db)")
	return cmd
}
