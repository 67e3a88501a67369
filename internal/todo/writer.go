package todo

import (
	"context"
	"time"
)

// writeJob is either a snapshot to store or, when barrier is set, a marker
// that is signaled once every job queued before it has finished.
type writeJob struct {
	value   string
	barrier chan struct{}
}

const queueSize = 64

// runWriter is the single goroutine that talks to the store. Jobs run in
// the order they were queued, so the last write always wins.
func (r *Repository) runWriter() {
	defer close(r.writerDone)
	for job := range r.queue {
		if job.barrier != nil {
			close(job.barrier)
			continue
		}
		r.write(job.value)
	}
}

func (r *Repository) write(value string) {
	ctx := context.Background()
	if r.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.writeTimeout)
		defer cancel()
	}

	start := time.Now()
	err := r.kv.Set(ctx, Key, value)
	if err != nil {
		err = &PersistenceError{Op: OpWrite, Key: Key, Err: err}
		r.log.Error("persist todos", "op", OpWrite, "key", Key, "err", err)
	} else {
		r.log.Debug("persisted todos", "key", Key, "bytes", len(value), "took", time.Since(start))
	}

	r.syncMu.Lock()
	r.syncErr = err
	r.syncMu.Unlock()
}

// enqueue must be called with r.mu held.
func (r *Repository) enqueue(job writeJob) bool {
	if r.closed {
		return false
	}
	r.queue <- job
	return true
}

// Flush blocks until every write queued before the call has reached the store.
func (r *Repository) Flush(ctx context.Context) error {
	barrier := make(chan struct{})
	r.mu.Lock()
	ok := r.enqueue(writeJob{barrier: barrier})
	r.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending writes and stops the writer. Mutations after Close
// still change memory but are no longer persisted.
func (r *Repository) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	select {
	case <-r.writerDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SyncErr is the error of the most recent write, nil once a write succeeds.
func (r *Repository) SyncErr() error {
	r.syncMu.Lock()
	defer r.syncMu.Unlock()
	return r.syncErr
}
