package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/JamesPrial/tasklist/internal/config"
	"github.com/JamesPrial/tasklist/internal/logging"
	"github.com/JamesPrial/tasklist/internal/storage"
	"github.com/JamesPrial/tasklist/internal/tasklist"
)

// streams are the standard streams a command reads and writes.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// app is everything a command needs: configuration, a logger, the storage
// backend and a controller bound to it.
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	store storage.StorageBackend
	ctrl  *tasklist.Controller
}

// openApp loads configuration, builds the logger and storage backend, and
// creates a controller. opts are passed to tasklist.New after the logger.
func openApp(s *streams, component string, opts ...tasklist.Option) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logOpts := cfg.LogOptions(component)
	logOpts.Output = s.err
	log, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewBackend(cfg.StorageOptions())
	if err != nil {
		return nil, err
	}
	log.WithField("backend", cfg.Storage.Backend).Debug("storage ready")

	opts = append([]tasklist.Option{tasklist.WithLogger(log)}, opts...)
	return &app{
		cfg:   cfg,
		log:   log,
		store: store,
		ctrl:  tasklist.New(store, opts...),
	}, nil
}

// Close releases the storage backend.
func (a *app) Close() {
	if err := storage.Close(a.store); err != nil {
		a.log.WithError(err).Warn("failed to close storage")
	}
}
