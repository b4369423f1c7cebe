package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Format selects the log encoder.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Options configure a logger beyond its level.
type Options struct {
	Level  string
	Format Format
	// Writer defaults to stderr.
	Writer io.Writer
}

// New returns a console logger writing to stderr at the given level.
func New(level string) (logr.Logger, error) {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions builds a logr.Logger backed by zap.
func NewWithOptions(o Options) (logr.Logger, error) {
	zapLevel, development, err := ParseLevel(o.Level)
	if err != nil {
		return logr.Logger{}, err
	}
	atomic := zap.NewAtomicLevelAt(zapLevel)
	w := o.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := []crzap.Opts{
		crzap.UseDevMode(development),
		crzap.Level(&atomic),
		crzap.WriteTo(w),
	}
	switch Format(strings.ToLower(string(o.Format))) {
	case FormatConsole, "":
		opts = append(opts, crzap.ConsoleEncoder())
	case FormatJSON:
		opts = append(opts, crzap.JSONEncoder())
	default:
		return logr.Logger{}, fmt.Errorf("unknown log format %q (expected console or json)", o.Format)
	}
	return crzap.New(opts...), nil
}

// ParseLevel maps a level name onto zap. Debug also switches on development
// mode, which adds caller and stack details.
func ParseLevel(level string) (zapcore.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, true, nil
	case "info", "":
		return zapcore.InfoLevel, false, nil
	case "warn", "warning":
		return zapcore.WarnLevel, false, nil
	case "error":
		return zapcore.ErrorLevel, false, nil
	default:
		return zapcore.InfoLevel, false, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
}
