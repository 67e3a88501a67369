// Package config resolves tada's settings. Later sources override earlier ones:
//
//  1. Defaults
//  2. User config file (<user config dir>/tada/config.toml, then ~/.tada/config.toml)
//  3. Project config file (.tada.toml in the working directory)
//  4. File passed with --config
//  5. .env in the working directory
//  6. TADA_* environment variables
//
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
)

const (
	DefaultBackend     = store.BackendFile
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultTheme       = "classic"
	ProjectConfigFile  = ".tada.toml"
	UserConfigFileName = "config.toml"
	EnvFile            = ".env"
)

// Config holds every setting. TOML keys match the field tags.
type Config struct {
	Backend             string `toml:"backend"`
	DataDir             string `toml:"data_dir"`
	SQLitePath          string `toml:"sqlite_path"`
	PostgresDSN         string `toml:"postgres_dsn"`
	FirestoreProject    string `toml:"firestore_project"`
	FirestoreCollection string `toml:"firestore_collection"`
	LogLevel            string `toml:"log_level"`
	LogFormat           string `toml:"log_format"`
	Theme               string `toml:"theme"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend:   string(DefaultBackend),
		DataDir:   DefaultDataDir(),
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Theme:     DefaultTheme,
	}
}

// Sources lists where Load reads from. Missing files are skipped.
type Sources struct {
	Files     []string
	EnvFile   string
	LookupEnv func(string) (string, bool)
}

// DefaultSources is the standard lookup order; explicit is the --config path
// and may be empty.
func DefaultSources(explicit string) Sources {
	var files []string
	if p := findUserConfigFile(); p != "" {
		files = append(files, p)
	}
	files = append(files, ProjectConfigFile)
	if explicit != "" {
		files = append(files, explicit)
	}
	return Sources{Files: files, EnvFile: EnvFile, LookupEnv: os.LookupEnv}
}

// Load resolves a Config from src.
func Load(src Sources) (*Config, error) {
	cfg := Default()

	for _, path := range src.Files {
		if err := loadConfigFile(cfg, path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	dotenv := map[string]string{}
	if src.EnvFile != "" {
		m, err := godotenv.Read(src.EnvFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("loading env file %s: %w", src.EnvFile, err)
		}
	}
	lookup := src.LookupEnv
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	loadFromEnv(cfg, func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.SQLitePath = expandPath(cfg.SQLitePath)
	return cfg, nil
}

// loadConfigFile decodes TOML over cfg; keys the file omits keep their value.
func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	ok := false
	for _, b := range store.Backends {
		if store.Backend(c.Backend) == b {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid backend %q: must be one of %v", c.Backend, store.Backends)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	switch store.Backend(c.Backend) {
	case store.BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("backend postgres needs postgres_dsn (or TADA_POSTGRES_DSN)")
		}
	case store.BackendFirestore:
		if c.FirestoreProject == "" {
			return fmt.Errorf("backend firestore needs firestore_project (or TADA_FIRESTORE_PROJECT)")
		}
	}
	return nil
}

// StoreOptions converts the storage settings for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:             store.Backend(c.Backend),
		DataDir:             c.DataDir,
		SQLitePath:          c.SQLitePath,
		PostgresDSN:         c.PostgresDSN,
		FirestoreProject:    c.FirestoreProject,
		FirestoreCollection: c.FirestoreCollection,
	}
}

// LogOptions converts the logging settings.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{Level: c.LogLevel, Format: c.LogFormat}
}
