package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/example/launchdash/internal/binding"
	"github.com/example/launchdash/internal/config"
	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/render"
	"github.com/example/launchdash/internal/selection"
)

type renderOptions struct {
	site string
	low  float64
	high float64
	out  string
}

func newRenderCommand(opts *config.Options, globals *globalOptions) *cobra.Command {
	ro := &renderOptions{site: string(selection.AllSites), out: "-"}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write both charts for one selection as a standalone HTML page",
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
			state := selection.DefaultState(ds.Bounds())
			state.Site = selection.SiteFilter(ro.site)
			if cmd.Flags().Changed("low") {
				state.Payload.Low = ro.low
			}
			if cmd.Flags().Changed("high") {
				state.Payload.High = ro.high
			}
			if !state.Site.IsAll() && !ds.HasSite(ro.site) {
				logger.Info("site has no launches; charts will be empty", "site", ro.site, "sites", ds.Sites())
			}
			pie, sc := binding.Figures(ds, state)

			var buf bytes.Buffer
			if err := render.WritePage(&buf, opts.Title, pie, sc, opts.RenderOptions()); err != nil {
				return fmt.Errorf("render page: %w", err)
			}
			if ro.out == "-" || ro.out == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			path, err := homedir.Expand(ro.out)
			if err != nil {
				return fmt.Errorf("expand output path: %w", err)
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logger.Info("rendered dashboard", "out", path, "site", ro.site, "points", sc.PointCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&ro.site, "site", ro.site, "Launch site to show, or ALL")
	cmd.Flags().Float64Var(&ro.low, "low", 0, "Lower payload bound in kg (defaults to the observed minimum)")
	cmd.Flags().Float64Var(&ro.high, "high", 0, "Upper payload bound in kg (defaults to the observed maximum)")
	cmd.Flags().StringVar(&ro.out, "out", ro.out, "Output file, or - for stdout")
	return cmd
}
