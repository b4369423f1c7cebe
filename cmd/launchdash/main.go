// main.go bootstraps launchdash: it builds the root Cobra command, layers
// environment and config-file values over flags, and executes with a
// signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/example/launchdash/internal/config"
	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/logging"
)

const (
	appName   = "launchdash"
	envPrefix = "LAUNCHDASH"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(os.Stderr, err)
	if err != nil {
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	LogLevel  string
	LogFormat string
}

func (g *globalOptions) logger(w io.Writer) (logr.Logger, error) {
	logger, err := logging.NewWithOptions(logging.Options{
		Level:  g.LogLevel,
		Format: logging.Format(g.LogFormat),
		Writer: w,
	})
	if err != nil {
		return logr.Logger{}, err
	}
	return logger.WithName(appName), nil
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	globals := &globalOptions{LogLevel: "info", LogFormat: string(logging.FormatConsole)}
	loader := newConfigLoader()
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Interactive dashboard over SpaceX launch records",
		Long:          "launchdash loads a launch records table and serves a dashboard with a launch site selector, a payload range slider, a success pie chart and a payload/outcome scatter chart.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loader.apply(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, globals)
		},
	}
	cmd.PersistentFlags().StringVar(&globals.LogLevel, "log-level", globals.LogLevel, "Log level for launchdash output (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&globals.LogFormat, "log-format", globals.LogFormat, "Log encoding (console or json)")
	opts.BindFlags(cmd.PersistentFlags())
	cmd.AddCommand(
		newServeCommand(opts, globals),
		newSitesCommand(opts, globals),
		newRenderCommand(opts, globals),
		newImportCommand(opts, globals),
		newVersionCommand(),
	)
	cmd.Example = `  # Serve the dashboard on the default port
  launchdash

  # Serve a SQLite snapshot on all interfaces
  launchdash serve --data launches.db --listen :8050

  # Print per-site success rates
  launchdash sites -o yaml`
	return cmd
}

// configLoader fills flags the user did not set from LAUNCHDASH_* variables
// and the optional config file.
type configLoader struct {
	v      *viper.Viper
	strict bool
}

func newConfigLoader() *configLoader {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	configFile := os.Getenv(envPrefix + "_CONFIG")
	configureConfigFile(v, configFile)
	return &configLoader{v: v, strict: configFile != ""}
}

func (l *configLoader) apply(cmd *cobra.Command) error {
	fs := cmd.Flags()
	if err := l.v.BindPFlags(fs); err != nil {
		return err
	}
	if err := readConfigFile(l.v, l.strict); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	pending := make(map[string]string)
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !l.v.IsSet(f.Name) {
			return
		}
		if val := fmt.Sprintf("%v", l.v.Get(f.Name)); val != "" {
			pending[f.Name] = val
		}
	})
	for name, val := range pending {
		// Set through the FlagSet so commands see the value as changed.
		if err := fs.Set(name, val); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", val, name, err)
		}
	}
	return nil
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, appName))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", appName))
		add(filepath.Join(home, "."+appName))
	}
	return dirs
}

func handleError(w io.Writer, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) || errors.Is(err, context.Canceled) {
		return
	}
	message := err.Error()
	var loadErr *dataset.LoadError
	switch {
	case errors.Is(err, dataset.ErrMissingColumn):
		message = fmt.Sprintf("%s\nHint: the table needs Launch Site, Payload Mass (kg), Booster Version Category and class columns.", err)
	case errors.Is(err, dataset.ErrUnsupportedFormat):
		message = fmt.Sprintf("%s\nHint: use a .csv file or a SQLite snapshot written by 'launchdash import'.", err)
	case errors.As(err, &loadErr) && errors.Is(err, os.ErrNotExist):
		message = fmt.Sprintf("%s\nHint: pass --data or set %s_DATA.", err, envPrefix)
	}
	fmt.Fprintf(w, "Error: %s\n", message)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
