// Package todo owns the todo collection: it creates, edits and deletes
// records in memory and mirrors the whole collection to a key-value store.
package todo

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// Key is the single store key the collection lives under.
const Key = "todos"

// Store is the durable key-value contract the repository persists through.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Repository is the only writer of the todo collection. Every mutation
// changes memory first, then queues a write of the full collection.
// Store failures are logged and never returned from mutations.
type Repository struct {
	kv           Store
	log          *log.Logger
	newID        func() string
	now          func() time.Time
	writeTimeout time.Duration

	mu      sync.Mutex
	records []model.Todo
	closed  bool

	queue      chan writeJob
	writerDone chan struct{}

	syncMu  sync.Mutex
	syncErr error
}

type Option func(*Repository)

func WithLogger(l *log.Logger) Option { return func(r *Repository) { r.log = l } }

// WithIDs replaces the id generator (NewID by default).
func WithIDs(gen func() string) Option { return func(r *Repository) { r.newID = gen } }

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option { return func(r *Repository) { r.now = now } }

// WithWriteTimeout bounds each store write. Zero means no bound.
func WithWriteTimeout(d time.Duration) Option { return func(r *Repository) { r.writeTimeout = d } }

// New returns an empty repository and starts its writer. Call Initialize
// to load persisted state and Close to stop the writer.
func New(kv Store, opts ...Option) *Repository {
	r := &Repository{
		kv:         kv,
		log:        log.New(io.Discard),
		newID:      NewID,
		now:        time.Now,
		records:    []model.Todo{},
		queue:      make(chan writeJob, queueSize),
		writerDone: make(chan struct{}),
	}
	for _, o := range opts {
		o(r)
	}
	go r.runWriter()
	return r
}

// Initialize loads the persisted collection. A missing key is an empty
// collection. Read failures and corrupt data are logged, leave the
// collection empty, and are returned for information only.
func (r *Repository) Initialize(ctx context.Context) error {
	records, err := r.load(ctx)
	if err != nil {
		var pe *PersistenceError
		if errors.As(err, &pe) && pe.Op == OpDecode {
			r.log.Error("persisted todos are corrupt, starting empty", "key", Key, "err", err)
		} else {
			r.log.Error("could not read persisted todos, starting empty", "key", Key, "err", err)
		}
		records = []model.Todo{}
	}

	r.mu.Lock()
	r.records = records
	r.mu.Unlock()
	r.log.Debug("loaded todos", "count", len(records))
	return err
}

func (r *Repository) load(ctx context.Context) ([]model.Todo, error) {
	raw, found, err := r.kv.Get(ctx, Key)
	if err != nil {
		return nil, &PersistenceError{Op: OpRead, Key: Key, Err: err}
	}
	if !found {
		return []model.Todo{}, nil
	}
	records, err := Decode(raw)
	if err != nil {
		return nil, &PersistenceError{Op: OpDecode, Key: Key, Err: err}
	}
	return records, nil
}

// Create adds a todo with content kept as typed. Blank content is ignored
// and reported with ok=false.
func (r *Repository) Create(content string) (model.Todo, bool) {
	if strings.TrimSpace(content) == "" {
		return model.Todo{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	t := model.Todo{
		ID:        uniqueID(r.newID, r.has),
		Content:   content,
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}
	r.records = append(r.records, t)
	r.persist()
	return t, true
}

// Delete removes the todo with id. Unknown ids are ignored.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.records = append(r.records[:i:i], r.records[i+1:]...)
	r.persist()
	return true
}

// Update replaces the content of the todo with id; ID and CreatedAt are
// kept. Unknown ids are ignored.
func (r *Repository) Update(id, content string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.records[i].Content = content
	r.persist()
	return true
}

// Get returns a copy of the todo with id.
func (r *Repository) Get(id string) (model.Todo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return r.records[i], true
}

// All returns a copy of the collection in insertion order.
func (r *Repository) All() []model.Todo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Todo, len(r.records))
	copy(out, r.records)
	return out
}

func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// persist queues the current collection. Must be called with r.mu held.
func (r *Repository) persist() {
	value, err := Encode(r.records)
	if err != nil {
		r.log.Error("encode todos", "err", err)
		return
	}
	if !r.enqueue(writeJob{value: value}) {
		r.log.Warn("repository closed, change not persisted", "key", Key)
	}
}

func (r *Repository) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) has(id string) bool { return r.indexOf(id) >= 0 }
