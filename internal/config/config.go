// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every value in the file can be overridden by the environment variable
// named in its env:"..." tag.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers understood by main.
const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverSQLite    = "sqlite"
	DriverMemory    = "memory"
)

// Config is the root configuration structure.
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	HTTPServer `yaml:"http_server"`

	Storage Storage `yaml:"storage"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:3000".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Storage selects and configures the document store.
type Storage struct {
	// Driver is one of "firestore", "mongo", "sqlite" or "memory".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-required:"true"`

	// Collection is the Firestore/Mongo collection (or SQLite table)
	// holding student documents.
	Collection string `yaml:"collection" env:"STORAGE_COLLECTION" env-default:"students"`

	SQLite    SQLite    `yaml:"sqlite"`
	Mongo     Mongo     `yaml:"mongo"`
	Firestore Firestore `yaml:"firestore"`
}

type SQLite struct {
	// Path is the filesystem path to the SQLite .db file.
	Path string `yaml:"path" env:"SQLITE_PATH"`
}

type Mongo struct {
	URI            string        `yaml:"uri" env:"MONGO_URI"`
	Database       string        `yaml:"database" env:"MONGO_DATABASE"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

type Firestore struct {
	ProjectID string `yaml:"project_id" env:"FIRESTORE_PROJECT_ID"`

	// CredentialsFile is a service-account key JSON file. When empty the
	// client falls back to Application Default Credentials (or the
	// emulator, if FIRESTORE_EMULATOR_HOST is set).
	CredentialsFile string `yaml:"credentials_file" env:"FIRESTORE_CREDENTIALS_FILE"`
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure: if this
// returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and checks that the selected storage driver is fully
// configured.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if err := cfg.Storage.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return &cfg, nil
}

func (s Storage) validate() error {
	switch s.Driver {
	case DriverFirestore:
		if s.Firestore.ProjectID == "" {
			return errors.New("storage.firestore.project_id is required for the firestore driver")
		}
	case DriverMongo:
		if s.Mongo.URI == "" || s.Mongo.Database == "" {
			return errors.New("storage.mongo.uri and storage.mongo.database are required for the mongo driver")
		}
	case DriverSQLite:
		if s.SQLite.Path == "" {
			return errors.New("storage.sqlite.path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
	return nil
}
