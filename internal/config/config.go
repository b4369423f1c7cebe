// File: internal/config/config.go
// Brief: Dashboard options shared by the serve, render and import commands.

// Package config defines the flag plumbing and runtime options for
// launchdash, translating Cobra/Viper flag values into a typed struct that
// the dataset loader and dashboard server consume.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"

	"github.com/example/launchdash/internal/dashboard"
	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/render"
	"github.com/example/launchdash/internal/selection"
)

const (
	DefaultDataPath   = "data/spacex_launch_dash.csv"
	DefaultListenAddr = "127.0.0.1:8050"
)

// Options holds the CLI configuration for the dashboard.
type Options struct {
	DataPath   string
	ListenAddr string
	Title      string
	SliderStep int
	SliderMin  int
	SliderMax  int
	AssetsHost string
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		DataPath:   DefaultDataPath,
		ListenAddr: DefaultListenAddr,
		Title:      dashboard.DefaultTitle,
		SliderStep: selection.DefaultStep,
	}
}

// BindFlags attaches dashboard flags to fs and returns the flag names.
func (o *Options) BindFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.StringVar(&o.DataPath, "data", o.DataPath, "Launch records to load (.csv, or a .db/.sqlite snapshot)")
	names = append(names, "data")
	fs.StringVar(&o.ListenAddr, "listen", o.ListenAddr, "Address the dashboard listens on")
	names = append(names, "listen")
	fs.StringVar(&o.Title, "title", o.Title, "Dashboard page title")
	names = append(names, "title")
	fs.IntVar(&o.SliderStep, "slider-step", o.SliderStep, "Payload slider step in kg")
	names = append(names, "slider-step")
	fs.IntVar(&o.SliderMin, "slider-min", o.SliderMin, "Payload slider minimum in kg (0 derives it from the data)")
	names = append(names, "slider-min")
	fs.IntVar(&o.SliderMax, "slider-max", o.SliderMax, "Payload slider maximum in kg (0 derives it from the data)")
	names = append(names, "slider-max")
	fs.StringVar(&o.AssetsHost, "assets-host", o.AssetsHost, "Base URL serving echarts.min.js (defaults to the go-echarts CDN)")
	names = append(names, "assets-host")
	return names
}

// Validate normalises the options and rejects unusable values.
func (o *Options) Validate() error {
	o.DataPath = strings.TrimSpace(o.DataPath)
	if o.DataPath == "" {
		return fmt.Errorf("--data is required")
	}
	expanded, err := homedir.Expand(o.DataPath)
	if err != nil {
		return fmt.Errorf("expand data path %q: %w", o.DataPath, err)
	}
	o.DataPath = expanded
	o.ListenAddr = strings.TrimSpace(o.ListenAddr)
	_, port, err := net.SplitHostPort(o.ListenAddr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", o.ListenAddr, err)
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("invalid listen port %q", port)
	}
	if strings.TrimSpace(o.Title) == "" {
		o.Title = dashboard.DefaultTitle
	}
	if o.SliderStep <= 0 {
		return fmt.Errorf("--slider-step must be positive, got %d", o.SliderStep)
	}
	if o.SliderMin < 0 || o.SliderMax < 0 {
		return fmt.Errorf("slider bounds must not be negative")
	}
	if o.SliderMin != 0 && o.SliderMax != 0 && o.SliderMax < o.SliderMin {
		return fmt.Errorf("--slider-max %d is below --slider-min %d", o.SliderMax, o.SliderMin)
	}
	return nil
}

// RangeControl builds the payload slider for bounds, honouring overrides.
func (o *Options) RangeControl(bounds dataset.PayloadBounds) selection.RangeControl {
	var lo, hi *int
	if o.SliderMin != 0 {
		v := o.SliderMin
		lo = &v
	}
	if o.SliderMax != 0 {
		v := o.SliderMax
		hi = &v
	}
	return selection.NewRangeControl(bounds, o.SliderStep, lo, hi)
}

// RenderOptions returns the go-echarts settings.
func (o *Options) RenderOptions() render.Options {
	return render.Options{AssetsHost: o.AssetsHost}
}

// Settings assembles the dashboard settings for a loaded dataset.
func (o *Options) Settings(ds *dataset.Dataset) dashboard.Settings {
	return dashboard.Settings{
		Title:  o.Title,
		Range:  o.RangeControl(ds.Bounds()),
		Render: o.RenderOptions(),
	}
}
