package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JamesPrial/tasklist/internal/pathutil"
)

// Backend names accepted by NewBackend.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// Options selects and configures a storage backend.
type Options struct {
	// Backend is one of the Backend* names. Empty means BackendJSON.
	Backend string

	// DataDir is the directory file-based backends live under.
	DataDir string

	// JSONPath overrides the JSON file location (default: <DataDir>/storage.json).
	JSONPath string

	// SQLitePath overrides the SQLite file location (default: <DataDir>/storage.db).
	SQLitePath string

	PostgresURL string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// NewBackend returns the storage backend described by opts.
//
// Returns an error if the backend name is unknown, a custom file path
// escapes DataDir, a required connection setting is missing, or the
// backend fails to initialize.
func NewBackend(opts Options) (StorageBackend, error) {
	backendType := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backendType == "" {
		backendType = BackendJSON
	}

	switch backendType {
	case BackendJSON:
		path, err := filePath(opts.DataDir, opts.JSONPath, "storage.json")
		if err != nil {
			return nil, fmt.Errorf("failed to determine JSON storage path: %w", err)
		}
		return NewJSONBackend(path), nil

	case BackendSQLite:
		path, err := filePath(opts.DataDir, opts.SQLitePath, "storage.db")
		if err != nil {
			return nil, fmt.Errorf("failed to determine SQLite database path: %w", err)
		}
		return NewSQLiteBackend(path)

	case BackendPostgres:
		if strings.TrimSpace(opts.PostgresURL) == "" {
			return nil, fmt.Errorf("postgres backend requires TASKLIST_POSTGRES_URL")
		}
		return NewPostgresBackend(opts.PostgresURL)

	case BackendMongo:
		if strings.TrimSpace(opts.MongoURI) == "" {
			return nil, fmt.Errorf("mongo backend requires TASKLIST_MONGO_URI")
		}
		return NewMongoBackend(opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)

	case BackendMemory:
		return NewMemoryBackend(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q. Expected one of json, sqlite, postgres, mongo, memory", backendType)
	}
}

// filePath returns customPath validated against dataDir, or the default
// file name inside dataDir when no custom path is set.
func filePath(dataDir, customPath, defaultName string) (string, error) {
	customPath = strings.TrimSpace(customPath)
	if customPath != "" {
		safePath, err := pathutil.ResolveSafePath(dataDir, customPath)
		if err != nil {
			return "", err
		}
		return safePath, nil
	}

	return filepath.Join(dataDir, defaultName), nil
}
