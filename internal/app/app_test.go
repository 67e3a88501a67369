package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/todo"
)

func newTestApp(t *testing.T) (*App, *memstore.Store) {
	t.Helper()
	kv := memstore.New()
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	repo := todo.New(kv, todo.WithClock(func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}))
	require.NoError(t, repo.Initialize(context.Background()))
	a := New(repo)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a, kv
}

func contents(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Content
	}
	return out
}

func TestScenario_CreateOnEmpty(t *testing.T) {
	a, _ := newTestApp(t)
	a.Create("Buy milk")
	assert.Equal(t, []string{"Buy milk"}, contents(a.Visible()))
}

func TestScenario_BlankCreate(t *testing.T) {
	a, _ := newTestApp(t)
	a.Create("")
	a.Create("   ")
	assert.Equal(t, 0, a.Total())
}

func TestScenario_NewestFirst(t *testing.T) {
	a, _ := newTestApp(t)
	a.Create("Task A")
	a.Create("Task B")
	assert.Equal(t, []string{"Task B", "Task A"}, contents(a.Visible()))
}

func TestScenario_Search(t *testing.T) {
	a, _ := newTestApp(t)
	a.Create("Apple")
	a.Create("Banana")
	a.SetSearchTerm("an")
	assert.Equal(t, "an", a.SearchTerm())
	assert.Equal(t, []string{"Banana"}, contents(a.Visible()))
	assert.Equal(t, 2, a.Total())

	a.SetSearchTerm("")
	assert.Len(t, a.Visible(), 2)
}

func TestScenario_DeleteUnknown(t *testing.T) {
	a, _ := newTestApp(t)
	for _, s := range []string{"one", "two", "three"} {
		a.Create(s)
	}
	before := a.Visible()
	assert.False(t, a.Delete("missing"))
	assert.Equal(t, before, a.Visible())
}

func TestScenario_EditCommit(t *testing.T) {
	a, _ := newTestApp(t)
	td, _ := a.Create("old text")

	require.True(t, a.BeginEdit(td.ID))
	id, draft, ok := a.Editing()
	require.True(t, ok)
	assert.Equal(t, td.ID, id)
	assert.Equal(t, "old text", draft, "draft is pre-filled")

	a.SetDraft("new text")
	assert.True(t, a.Commit())

	_, _, ok = a.Editing()
	assert.False(t, ok)
	got, _ := a.Get(td.ID)
	assert.Equal(t, "new text", got.Content)
	assert.Equal(t, td.CreatedAt, got.CreatedAt)
}

func TestEditCancel(t *testing.T) {
	a, kv := newTestApp(t)
	td, _ := a.Create("keep me")
	require.NoError(t, a.Flush(context.Background()))
	writes := len(kv.Writes())

	a.BeginEdit(td.ID)
	a.SetDraft("discarded")
	a.Cancel()
	require.NoError(t, a.Flush(context.Background()))

	got, _ := a.Get(td.ID)
	assert.Equal(t, "keep me", got.Content)
	assert.Len(t, kv.Writes(), writes)
	assert.False(t, a.Commit())
}

func TestUpdateEndsEdit(t *testing.T) {
	a, _ := newTestApp(t)
	td, _ := a.Create("x")
	a.BeginEdit(td.ID)
	a.Update(td.ID, "direct")

	_, _, ok := a.Editing()
	assert.False(t, ok)
	got, _ := a.Get(td.ID)
	assert.Equal(t, "direct", got.Content)
}

func TestBeginEditUnknownID(t *testing.T) {
	a, _ := newTestApp(t)
	assert.False(t, a.BeginEdit("ghost"))
	_, _, ok := a.Editing()
	assert.False(t, ok)
}

func TestDeleteEndsEditOfSameTodo(t *testing.T) {
	a, _ := newTestApp(t)
	x, _ := a.Create("x")
	y, _ := a.Create("y")

	a.BeginEdit(x.ID)
	a.Delete(y.ID)
	id, _, ok := a.Editing()
	assert.True(t, ok)
	assert.Equal(t, x.ID, id)

	a.Delete(x.ID)
	_, _, ok = a.Editing()
	assert.False(t, ok)
}

func TestSyncErrSurfaces(t *testing.T) {
	a, kv := newTestApp(t)
	kv.FailSet(errors.New("read-only fs"))
	a.Create("unsaved")
	require.NoError(t, a.Flush(context.Background()))
	assert.ErrorIs(t, a.SyncErr(), todo.ErrPersistenceWrite)
	assert.Len(t, a.Visible(), 1)
}
