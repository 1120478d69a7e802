// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is a logrus level name ("debug", "info", "warn", ...). Empty means info.
	Level string

	// Format is "text" (default) or "json".
	Format string

	// File, when set, sends output to a size-rotated file.
	File string

	// Output receives entries when File is empty. Nil means stderr.
	Output io.Writer

	// Component is attached to every entry as the "service" field.
	Component string
}

// New returns a logger configured from opts.
//
// Returns an error for an unknown level or format.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	level := logrus.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		parsed, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q. Expected text or json", opts.Format)
	}

	logger.SetOutput(output(opts))

	if opts.Component != "" {
		logger.AddHook(componentHook(opts.Component))
	}

	return logger, nil
}

// output picks a rotating file, the given writer or stderr.
func output(opts Options) io.Writer {
	if strings.TrimSpace(opts.File) == "" {
		if opts.Output != nil {
			return opts.Output
		}
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// componentHook stamps every entry with the service name.
type componentHook string

func (h componentHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h componentHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = string(h)
	}
	return nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
