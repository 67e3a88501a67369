package todo

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/memstore"
)

func TestCreate_BuyMilk(t *testing.T) {
	r, kv := newTestRepo(t)

	got, ok := r.Create("Buy milk")
	require.True(t, ok)
	assert.Equal(t, "Buy milk", got.Content)
	assert.Equal(t, epoch, got.CreatedAt)
	assert.NotEmpty(t, got.ID)

	all := r.All()
	require.Len(t, all, 1)
	assert.Equal(t, got, all[0])

	flush(t, r)
	stored, found, err := kv.Get(context.Background(), Key)
	require.NoError(t, err)
	require.True(t, found)
	decoded, err := Decode(stored)
	require.NoError(t, err)
	assert.Equal(t, all, decoded)
}

func TestCreate_BlankIsIgnored(t *testing.T) {
	r, kv := newTestRepo(t)

	for _, s := range []string{"", "   ", "\t\n"} {
		_, ok := r.Create(s)
		assert.False(t, ok, "%q", s)
	}
	flush(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, kv.Writes(), "blank content must not trigger persistence")
}

func TestCreate_KeepsContentUntrimmed(t *testing.T) {
	r, _ := newTestRepo(t)
	got, ok := r.Create("  spaced out  ")
	require.True(t, ok)
	assert.Equal(t, "  spaced out  ", got.Content)
}

func TestCreate_RepeatingGeneratorStillUnique(t *testing.T) {
	r, _ := newTestRepo(t, WithIDs(func() string { return "1704103200000" }))
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		got, ok := r.Create("same millisecond")
		require.True(t, ok)
		assert.False(t, seen[got.ID], "duplicate id %s", got.ID)
		seen[got.ID] = true
	}
}

func TestDelete_UnknownIDLeavesCollection(t *testing.T) {
	r, kv := newTestRepo(t)
	for _, s := range []string{"a", "b", "c"} {
		r.Create(s)
	}
	flush(t, r)
	before := r.All()
	writes := len(kv.Writes())

	assert.False(t, r.Delete("no-such-id"))
	flush(t, r)
	assert.Equal(t, before, r.All())
	assert.Len(t, kv.Writes(), writes)
}

func TestDelete_Idempotent(t *testing.T) {
	r, _ := newTestRepo(t)
	a, _ := r.Create("a")
	r.Create("b")

	assert.True(t, r.Delete(a.ID))
	once := r.All()
	assert.False(t, r.Delete(a.ID))
	assert.Equal(t, once, r.All())
	assert.Len(t, once, 1)
}

func TestUpdate_PreservesIdentity(t *testing.T) {
	r, _ := newTestRepo(t)
	orig, _ := r.Create("old text")

	require.True(t, r.Update(orig.ID, "new text"))
	got, ok := r.Get(orig.ID)
	require.True(t, ok)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.Equal(t, "new text", got.Content)
}

func TestUpdate_UnknownIDIgnored(t *testing.T) {
	r, _ := newTestRepo(t)
	r.Create("keep")
	before := r.All()
	assert.False(t, r.Update("ghost", "boo"))
	assert.Equal(t, before, r.All())
}

func TestAll_ReturnsCopy(t *testing.T) {
	r, _ := newTestRepo(t)
	r.Create("original")
	all := r.All()
	all[0].Content = "tampered"
	assert.Equal(t, "original", r.All()[0].Content)
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key starts empty", func(t *testing.T) {
		r, _ := newTestRepo(t)
		require.NoError(t, r.Initialize(ctx))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("loads persisted todos", func(t *testing.T) {
		kv := memstore.New()
		kv.Put(Key, `[{"id":"1","content":"Buy milk","createdAt":"2024-01-01T10:00:00.000Z"}]`)
		r := New(kv)
		defer r.Close(ctx)

		require.NoError(t, r.Initialize(ctx))
		got, ok := r.Get("1")
		require.True(t, ok)
		assert.Equal(t, "Buy milk", got.Content)
	})

	t.Run("read failure falls back to empty", func(t *testing.T) {
		kv := memstore.New()
		boom := errors.New("eio")
		kv.FailGet(boom)
		var buf bytes.Buffer
		r := New(kv, WithLogger(log.New(&buf)))
		defer r.Close(ctx)

		err := r.Initialize(ctx)
		assert.ErrorIs(t, err, ErrPersistenceRead)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrCorruptState)
		assert.Equal(t, 0, r.Len())
		assert.Contains(t, buf.String(), "could not read persisted todos")
	})

	t.Run("corrupt data falls back to empty", func(t *testing.T) {
		kv := memstore.New()
		kv.Put(Key, `{definitely not a list`)
		var buf bytes.Buffer
		r := New(kv, WithLogger(log.New(&buf)))
		defer r.Close(ctx)

		err := r.Initialize(ctx)
		assert.ErrorIs(t, err, ErrCorruptState)
		assert.Equal(t, 0, r.Len())
		assert.Contains(t, buf.String(), "corrupt")
	})

	t.Run("corrupt data is overwritten by the next write", func(t *testing.T) {
		kv := memstore.New()
		kv.Put(Key, `[{"id":1}]`)
		r := New(kv)
		defer r.Close(ctx)

		require.ErrorIs(t, r.Initialize(ctx), ErrCorruptState)
		r.Create("fresh start")
		flush(t, r)

		stored, _, err := kv.Get(ctx, Key)
		require.NoError(t, err)
		decoded, err := Decode(stored)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.Equal(t, "fresh start", decoded[0].Content)
	})
}

func TestPersistence_WriteFailureKeepsMemory(t *testing.T) {
	var buf bytes.Buffer
	r, kv := newTestRepo(t, WithLogger(log.New(&buf)))
	boom := errors.New("disk full")

	kv.FailSet(boom)
	_, ok := r.Create("survives in memory")
	require.True(t, ok)
	flush(t, r)

	assert.Equal(t, 1, r.Len())
	err := r.SyncErr()
	assert.ErrorIs(t, err, ErrPersistenceWrite)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "persist todos")

	// the next successful write heals the divergence
	kv.FailSet(nil)
	r.Create("second")
	flush(t, r)
	assert.NoError(t, r.SyncErr())

	stored, _, err := kv.Get(context.Background(), Key)
	require.NoError(t, err)
	decoded, err := Decode(stored)
	require.NoError(t, err)
	assert.Len(t, decoded, 2)
}

func TestPersistence_WritesKeepIssueOrder(t *testing.T) {
	r, kv := newTestRepo(t)
	const n = 200
	for i := 0; i < n; i++ {
		r.Create("burst")
	}
	flush(t, r)

	writes := kv.Writes()
	require.Len(t, writes, n)
	for i, w := range writes {
		decoded, err := Decode(w)
		require.NoError(t, err)
		assert.Len(t, decoded, i+1, "write %d", i)
	}
	final, err := Decode(writes[n-1])
	require.NoError(t, err)
	assert.Equal(t, r.All(), final)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	r, kv := newTestRepo(t)
	r.Create("before close")
	require.NoError(t, r.Close(ctx))
	assert.Len(t, kv.Writes(), 1, "close drains queued writes")

	_, ok := r.Create("after close")
	assert.True(t, ok)
	assert.Equal(t, 2, r.Len())
	assert.NoError(t, r.Flush(ctx))
	assert.NoError(t, r.Close(ctx))
	assert.Len(t, kv.Writes(), 1)
}

func TestProperty_CreatedIDsAreUnique(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		contents := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,8}`)).Draw(rt, "contents")
		r := New(memstore.New())
		defer r.Close(context.Background())

		seen := map[string]bool{}
		for _, c := range contents {
			got, ok := r.Create(c)
			if !ok {
				rt.Fatalf("create %q ignored", c)
			}
			if seen[got.ID] {
				rt.Fatalf("duplicate id %s", got.ID)
			}
			seen[got.ID] = true
		}
		if r.Len() != len(contents) {
			rt.Fatalf("len = %d, want %d", r.Len(), len(contents))
		}
	})
}

func TestProperty_PersistenceRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		kv := memstore.New()
		r := New(kv, WithClock(steppingClock()))
		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 40).Draw(rt, "ops")
		for _, op := range ops {
			all := r.All()
			switch {
			case op == 0 || len(all) == 0:
				r.Create(rapid.String().Draw(rt, "content") + "x")
			case op == 1:
				r.Delete(all[rapid.IntRange(0, len(all)-1).Draw(rt, "del")].ID)
			default:
				r.Update(all[rapid.IntRange(0, len(all)-1).Draw(rt, "upd")].ID, rapid.String().Draw(rt, "edit"))
			}
		}
		want := r.All()
		if err := r.Close(context.Background()); err != nil {
			rt.Fatal(err)
		}

		reloaded := New(kv)
		defer reloaded.Close(context.Background())
		if err := reloaded.Initialize(context.Background()); err != nil {
			rt.Fatal(err)
		}
		got := reloaded.All()
		if len(got) != len(want) {
			rt.Fatalf("reloaded %d records, want %d", len(got), len(want))
		}
		byID := make(map[string]model.Todo, len(want))
		for _, w := range want {
			byID[w.ID] = w
		}
		for _, g := range got {
			w, ok := byID[g.ID]
			if !ok || w.Content != g.Content || !w.CreatedAt.Equal(g.CreatedAt) {
				rt.Fatalf("reloaded %+v, want %+v", g, w)
			}
		}
	})
}
