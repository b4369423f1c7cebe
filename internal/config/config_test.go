// File: internal/config/config_test.go
// Brief: Internal config package tests.

// config_test.go verifies Options defaults, flag binding and validation for
// the dashboard commands.
package config

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/example/launchdash/internal/dataset"
)

func TestNewOptionsDefaults(t *testing.T) {
	opts := NewOptions()
	if opts.DataPath != DefaultDataPath {
		t.Fatalf("data default mismatch, got %s", opts.DataPath)
	}
	if opts.ListenAddr != "127.0.0.1:8050" {
		t.Fatalf("listen default mismatch, got %s", opts.ListenAddr)
	}
	if opts.SliderStep != 1000 {
		t.Fatalf("slider step default mismatch, got %d", opts.SliderStep)
	}
	if opts.Title != "SpaceX Launch Records Dashboard" {
		t.Fatalf("unexpected default title %q", opts.Title)
	}
}

func TestBindFlagsParsesValues(t *testing.T) {
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	names := opts.BindFlags(fs)
	if len(names) != 7 {
		t.Fatalf("expected 7 flag names, got %v", names)
	}
	for _, name := range names {
		if fs.Lookup(name) == nil {
			t.Fatalf("flag %s not registered", name)
		}
	}
	if err := fs.Parse([]string{"--data", "launches.db", "--listen", ":9000", "--slider-step", "500", "--slider-max", "12000"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := opts.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if opts.DataPath != "launches.db" || opts.ListenAddr != ":9000" || opts.SliderStep != 500 || opts.SliderMax != 12000 {
		t.Fatalf("flags not applied: %+v", opts)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"empty data", func(o *Options) { o.DataPath = "  " }},
		{"listen without port", func(o *Options) { o.ListenAddr = "localhost" }},
		{"listen bad port", func(o *Options) { o.ListenAddr = "localhost:http-alt" }},
		{"zero step", func(o *Options) { o.SliderStep = 0 }},
		{"negative min", func(o *Options) { o.SliderMin = -1 }},
		{"inverted overrides", func(o *Options) { o.SliderMin = 5000; o.SliderMax = 1000 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := NewOptions()
			tc.mutate(opts)
			if err := opts.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidateRestoresBlankTitle(t *testing.T) {
	opts := NewOptions()
	opts.Title = " "
	if err := opts.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if opts.Title != "SpaceX Launch Records Dashboard" {
		t.Fatalf("expected default title, got %q", opts.Title)
	}
}

func TestRangeControlOverrides(t *testing.T) {
	bounds := dataset.PayloadBounds{Min: 0, Max: 9600}

	derived := NewOptions().RangeControl(bounds)
	if derived.Min != 0 || derived.Max != 10000 {
		t.Fatalf("unexpected derived range %+v", derived)
	}

	opts := NewOptions()
	opts.SliderMax = 12000
	overridden := opts.RangeControl(bounds)
	if overridden.Max != 12000 || overridden.Value != [2]int{0, 9600} {
		t.Fatalf("unexpected overridden range %+v", overridden)
	}
}

func TestSettingsCarryRenderOptions(t *testing.T) {
	opts := NewOptions()
	opts.AssetsHost = "http://127.0.0.1:9000/assets/"
	settings := opts.Settings(dataset.FromRecords(nil))
	if settings.Render.AssetsHost != opts.AssetsHost || settings.Title != opts.Title {
		t.Fatalf("unexpected settings %+v", settings)
	}
	if settings.Range.Step != 1000 {
		t.Fatalf("expected default step, got %d", settings.Range.Step)
	}
}
