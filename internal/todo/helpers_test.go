package todo

import (
	"context"
	"testing"
	"time"

	"github.com/Makepad-fr/tada/internal/store/memstore"
)

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// steppingClock returns epoch, epoch+1s, epoch+2s, ...
func steppingClock() func() time.Time {
	n := 0
	return func() time.Time {
		t := epoch.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

// newTestRepo builds a repository over a fresh memstore and closes it with the test.
func newTestRepo(t testing.TB, opts ...Option) (*Repository, *memstore.Store) {
	t.Helper()
	kv := memstore.New()
	r := New(kv, append([]Option{WithClock(steppingClock())}, opts...)...)
	t.Cleanup(func() { r.Close(context.Background()) })
	return r, kv
}

func flush(t testing.TB, r *Repository) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
}
