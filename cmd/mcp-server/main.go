// Package main implements the standalone tasklist MCP server.
//
// It binds one task list controller to the configured storage backend and
// serves task tools over stdio JSON-RPC (Model Context Protocol). Logs go
// to stderr so they never interleave with protocol traffic on stdout.
package main

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/JamesPrial/tasklist/internal/config"
	"github.com/JamesPrial/tasklist/internal/logging"
	"github.com/JamesPrial/tasklist/internal/mcpserver"
	"github.com/JamesPrial/tasklist/internal/storage"
	"github.com/JamesPrial/tasklist/internal/tasklist"
)

func run() int {
	errLogger := log.New(os.Stderr, "[mcp-server] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		errLogger.Printf("Failed to load configuration: %v", err)
		return 1
	}

	logger, err := logging.New(cfg.LogOptions("tasklist-mcp"))
	if err != nil {
		errLogger.Printf("Failed to create logger: %v", err)
		return 1
	}

	store, err := storage.NewBackend(cfg.StorageOptions())
	if err != nil {
		errLogger.Printf("Failed to open storage: %v", err)
		return 1
	}
	defer func() {
		if err := storage.Close(store); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	ctrl := tasklist.New(store, tasklist.WithLogger(logger))

	srv, err := mcpserver.NewServer(ctrl, logger)
	if err != nil {
		errLogger.Printf("Failed to create MCP server: %v", err)
		return 1
	}

	logger.WithFields(logrus.Fields{
		"backend":  cfg.Storage.Backend,
		"data_dir": cfg.DataDir,
	}).Info("serving MCP over stdio")

	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
