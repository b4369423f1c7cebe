package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/launchdash/internal/version"
)

func newVersionCommand() *cobra.Command {
	output := "text"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()
			switch strings.ToLower(output) {
			case "text", "":
				_, err := fmt.Fprintln(out, info.String())
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			case "yaml", "yml":
				return yaml.NewEncoder(out).Encode(info)
			default:
				return fmt.Errorf("unsupported output %q (expected text, json, or yaml)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "Output format: text, json, or yaml")
	return cmd
}
