// Package config resolves tasklist settings.
//
// Sources, lowest precedence first:
//   - built-in defaults
//   - an optional YAML file (TASKLIST_CONFIG, or <data dir>/config.yaml when present)
//   - a .env file in the working directory
//   - the process environment
//
// Environment variables:
//   - TASKLIST_DATA_DIR: directory for file-based storage (default: ~/.tasklist)
//   - TASKLIST_STORAGE_BACKEND: "json" (default), "sqlite", "postgres", "mongo" or "memory"
//   - TASKLIST_JSON_PATH / TASKLIST_SQLITE_PATH: custom file locations inside the data dir
//   - TASKLIST_POSTGRES_URL: PostgreSQL connection string
//   - TASKLIST_MONGO_URI, TASKLIST_MONGO_DATABASE, TASKLIST_MONGO_COLLECTION
//   - TASKLIST_HTTP_ADDR: listen address for the web UI (default: ":8080")
//   - TASKLIST_LOG_LEVEL, TASKLIST_LOG_FORMAT, TASKLIST_LOG_FILE
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/JamesPrial/tasklist/internal/logging"
	"github.com/JamesPrial/tasklist/internal/storage"
)

// Defaults.
const (
	DefaultHTTPAddr        = ":8080"
	DefaultMongoDatabase   = "tasklist"
	DefaultMongoCollection = "storage"
	defaultDataDirName     = ".tasklist"
	configFileName         = "config.yaml"
)

// StorageConfig selects the storage backend.
type StorageConfig struct {
	Backend         string `yaml:"backend"`
	JSONPath        string `yaml:"json_path"`
	SQLitePath      string `yaml:"sqlite_path"`
	PostgresURL     string `yaml:"postgres_url"`
	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`
}

// HTTPConfig configures the web UI.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the resolved configuration.
type Config struct {
	DataDir string        `yaml:"data_dir"`
	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
}

// StorageOptions converts the storage section for storage.NewBackend.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:         c.Storage.Backend,
		DataDir:         c.DataDir,
		JSONPath:        c.Storage.JSONPath,
		SQLitePath:      c.Storage.SQLitePath,
		PostgresURL:     c.Storage.PostgresURL,
		MongoURI:        c.Storage.MongoURI,
		MongoDatabase:   c.Storage.MongoDatabase,
		MongoCollection: c.Storage.MongoCollection,
	}
}

// LogOptions converts the log section for logging.New.
func (c *Config) LogOptions(component string) logging.Options {
	return logging.Options{
		Level:     c.Log.Level,
		Format:    c.Log.Format,
		File:      c.Log.File,
		Component: component,
	}
}

// Load resolves configuration from ./.env, the process environment and
// the optional YAML file.
func Load() (*Config, error) {
	return LoadWith(os.LookupEnv, ".env")
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// LoadWith resolves configuration using lookup for the environment and
// envFile as the dotenv file. A missing envFile is ignored.
func LoadWith(lookup LookupFunc, envFile string) (*Config, error) {
	dotenv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	get := func(key string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	cfg := &Config{
		Storage: StorageConfig{
			Backend:         storage.BackendJSON,
			MongoDatabase:   DefaultMongoDatabase,
			MongoCollection: DefaultMongoCollection,
		},
		HTTP: HTTPConfig{Addr: DefaultHTTPAddr},
		Log:  LogConfig{Level: "info", Format: "text"},
	}

	dataDir := get("TASKLIST_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, defaultDataDirName)
	}
	cfg.DataDir = dataDir

	if err := loadFile(cfg, get("TASKLIST_CONFIG")); err != nil {
		return nil, err
	}

	override(&cfg.DataDir, get("TASKLIST_DATA_DIR"))
	override(&cfg.Storage.Backend, get("TASKLIST_STORAGE_BACKEND"))
	override(&cfg.Storage.JSONPath, get("TASKLIST_JSON_PATH"))
	override(&cfg.Storage.SQLitePath, get("TASKLIST_SQLITE_PATH"))
	override(&cfg.Storage.PostgresURL, get("TASKLIST_POSTGRES_URL"))
	override(&cfg.Storage.MongoURI, get("TASKLIST_MONGO_URI"))
	override(&cfg.Storage.MongoDatabase, get("TASKLIST_MONGO_DATABASE"))
	override(&cfg.Storage.MongoCollection, get("TASKLIST_MONGO_COLLECTION"))
	override(&cfg.HTTP.Addr, get("TASKLIST_HTTP_ADDR"))
	override(&cfg.Log.Level, get("TASKLIST_LOG_LEVEL"))
	override(&cfg.Log.Format, get("TASKLIST_LOG_FORMAT"))
	override(&cfg.Log.File, get("TASKLIST_LOG_FILE"))

	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)
	return cfg, nil
}

// loadFile merges the YAML file at path into cfg. With no explicit path,
// <data dir>/config.yaml is used if it exists.
func loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
