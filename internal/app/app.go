// Package app is the object handed to presentation code: the todo
// repository plus the current search term and edit session. It is meant to
// be driven from one goroutine (the CLI command or the Bubble Tea loop).
package app

import (
	"context"

	"github.com/Makepad-fr/tada/internal/edit"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/query"
	"github.com/Makepad-fr/tada/internal/todo"
)

type App struct {
	repo    *todo.Repository
	session edit.Session
	term    string
}

func New(repo *todo.Repository) *App {
	return &App{repo: repo}
}

// Visible is the filtered, newest-first list for the current search term.
func (a *App) Visible() []model.Todo {
	return query.Visible(a.repo.All(), a.term)
}

// Total counts every todo, ignoring the search term.
func (a *App) Total() int { return a.repo.Len() }

func (a *App) Get(id string) (model.Todo, bool) { return a.repo.Get(id) }

func (a *App) Create(content string) (model.Todo, bool) {
	return a.repo.Create(content)
}

// Delete removes id. Deleting the todo under edit also ends the edit.
func (a *App) Delete(id string) bool {
	if cur, ok := a.session.Editing(); ok && cur == id {
		a.session.Cancel()
	}
	return a.repo.Delete(id)
}

// Update replaces the content of id and ends any edit in progress.
func (a *App) Update(id, content string) bool {
	a.session.Reset()
	return a.repo.Update(id, content)
}

func (a *App) SetSearchTerm(term string) { a.term = term }

func (a *App) SearchTerm() string { return a.term }

// BeginEdit starts editing id with the draft pre-filled from its current
// content. Unknown ids leave the session unchanged.
func (a *App) BeginEdit(id string) bool {
	t, ok := a.repo.Get(id)
	if !ok {
		return false
	}
	a.session.Begin(id, t.Content)
	return true
}

func (a *App) SetDraft(text string) { a.session.SetDraft(text) }

// Commit saves the draft to the todo under edit. Reports false when idle.
func (a *App) Commit() bool {
	_, ok := a.session.Commit(a)
	return ok
}

func (a *App) Cancel() { a.session.Cancel() }

// Editing reports the todo under edit and its draft.
func (a *App) Editing() (id, draft string, ok bool) {
	id, ok = a.session.Editing()
	return id, a.session.Draft(), ok
}

// SyncErr is the last persistence failure, nil once a write succeeds again.
func (a *App) SyncErr() error { return a.repo.SyncErr() }

// Flush waits for queued writes to reach the store.
func (a *App) Flush(ctx context.Context) error { return a.repo.Flush(ctx) }

// Close flushes and stops the repository writer.
func (a *App) Close(ctx context.Context) error { return a.repo.Close(ctx) }
