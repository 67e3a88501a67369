// Package store holds the durable key-value adapters the todo repository
// persists through, and a factory that picks one from configuration.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/store/firestorestore"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/pgstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// KV is the durable store contract: string values under string keys.
// Get reports found=false (and no error) for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store is a KV that owns resources to release on shutdown.
type Store interface {
	KV
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile      Backend = "file"
	BackendSQLite    Backend = "sqlite"
	BackendPostgres  Backend = "postgres"
	BackendFirestore Backend = "firestore"
	BackendMemory    Backend = "memory"
)

// Backends lists every accepted backend name.
var Backends = []Backend{BackendFile, BackendSQLite, BackendPostgres, BackendFirestore, BackendMemory}

// Options selects and parameterizes a backend.
type Options struct {
	Backend             Backend
	DataDir             string
	SQLitePath          string
	PostgresDSN         string
	FirestoreProject    string
	FirestoreCollection string
}

// Open builds the Store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		s, err := jsonstore.New(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return nopCloser{s}, nil

	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(opts.DataDir, "tada.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite backend: %w", err)
		}
		return sqlitestore.Open(path)

	case BackendPostgres:
		if opts.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend: empty dsn")
		}
		return pgstore.Open(ctx, opts.PostgresDSN)

	case BackendFirestore:
		if opts.FirestoreProject == "" {
			return nil, fmt.Errorf("firestore backend: empty project id")
		}
		return firestorestore.Open(ctx, opts.FirestoreProject, opts.FirestoreCollection)

	case BackendMemory:
		return nopCloser{memstore.New()}, nil
	}
	return nil, fmt.Errorf("unknown backend %q (want one of %v)", opts.Backend, Backends)
}

type nopCloser struct{ KV }

func (nopCloser) Close() error { return nil }
