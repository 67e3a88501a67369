package config

import "strings"

// Environment variable names.
const (
	EnvBackend             = "TADA_BACKEND"
	EnvDataDir             = "TADA_DATA_DIR"
	EnvSQLitePath          = "TADA_SQLITE_PATH"
	EnvPostgresDSN         = "TADA_POSTGRES_DSN"
	EnvFirestoreProject    = "TADA_FIRESTORE_PROJECT"
	EnvFirestoreCollection = "TADA_FIRESTORE_COLLECTION"
	EnvLogLevel            = "TADA_LOG_LEVEL"
	EnvLogFormat           = "TADA_LOG_FORMAT"
	EnvTheme               = "TADA_THEME"
)

func loadFromEnv(cfg *Config, lookup func(string) (string, bool)) {
	fields := []struct {
		key string
		dst *string
	}{
		{EnvBackend, &cfg.Backend},
		{EnvDataDir, &cfg.DataDir},
		{EnvSQLitePath, &cfg.SQLitePath},
		{EnvPostgresDSN, &cfg.PostgresDSN},
		{EnvFirestoreProject, &cfg.FirestoreProject},
		{EnvFirestoreCollection, &cfg.FirestoreCollection},
		{EnvLogLevel, &cfg.LogLevel},
		{EnvLogFormat, &cfg.LogFormat},
		{EnvTheme, &cfg.Theme},
	}
	for _, f := range fields {
		if v, ok := lookup(f.key); ok && strings.TrimSpace(v) != "" {
			*f.dst = strings.TrimSpace(v)
		}
	}
}
