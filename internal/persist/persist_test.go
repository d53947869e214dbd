package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshills/focuskit/internal/state"
)

type prefs struct {
	Theme string   `json:"theme"`
	Size  int      `json:"size"`
	Tags  []string `json:"tags"`
	Panel struct {
		Open  bool `json:"open"`
		Width int  `json:"width"`
	} `json:"panel"`
}

func defaultPrefs() prefs {
	p := prefs{Theme: "light", Size: 12, Tags: []string{"a"}}
	p.Panel.Width = 30
	return p
}

// countingStore counts saves and can fail on demand.
type countingStore struct {
	*MemoryStore
	saves atomic.Int32
	fail  atomic.Bool
}

func (s *countingStore) Save(ctx context.Context, key string, value []byte) error {
	s.saves.Add(1)
	if s.fail.Load() {
		return errors.New("disk full")
	}
	return s.MemoryStore.Save(ctx, key, value)
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: NewMemoryStore()}
}

func TestMerge(t *testing.T) {
	dst := map[string]any{
		"a": 1.0,
		"n": map[string]any{"x": 1.0, "y": 2.0},
		"l": []any{1.0},
	}
	src := map[string]any{
		"b": "new",
		"n": map[string]any{"y": 3.0},
		"l": []any{2.0, 3.0},
	}

	got := Merge(dst, src)

	require.Equal(t, 1.0, got["a"])
	require.Equal(t, "new", got["b"])
	require.Equal(t, map[string]any{"x": 1.0, "y": 3.0}, got["n"])
	require.Equal(t, []any{2.0, 3.0}, got["l"])
	require.Equal(t, map[string]any{"x": 1.0, "y": 2.0}, dst["n"], "dst must not change")
}

func TestHydrate(t *testing.T) {
	got, err := Hydrate(defaultPrefs(), []byte(`{"theme":"dark","panel":{"open":true},"legacy":true}`))
	require.NoError(t, err)

	require.Equal(t, "dark", got.Theme)
	require.Equal(t, 12, got.Size, "missing field takes the default")
	require.Equal(t, []string{"a"}, got.Tags)
	require.True(t, got.Panel.Open)
	require.Equal(t, 30, got.Panel.Width, "nested default survives")
}

func TestHydrateEmptyAndInvalid(t *testing.T) {
	got, err := Hydrate(defaultPrefs(), nil)
	require.NoError(t, err)
	require.Equal(t, defaultPrefs(), got)

	got, err = Hydrate(defaultPrefs(), []byte(`{not json`))
	require.Error(t, err)
	require.Equal(t, defaultPrefs(), got)

	_, err = Hydrate(defaultPrefs(), []byte(`null`))
	require.ErrorIs(t, err, ErrNotObject)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.sqlite")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)

	_, ok, err := s.Load(ctx, "app")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Save(ctx, "app", []byte(`{"v":1}`)))
	require.NoError(t, s.Save(ctx, "app", []byte(`{"v":2}`)))

	v, ok, err := s.Load(ctx, "app")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"v":2}`, string(v))

	_, ok, err = s.UpdatedAt(ctx, "app")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Close())

	// Reopen: the value is durable.
	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err = s.Load(ctx, "app")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"v":2}`, string(v))

	require.NoError(t, s.Delete(ctx, "app"))
	_, ok, err = s.Load(ctx, "app")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Save(context.Background(), "k", nil), ErrClosed)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(NewMemoryStore(), Options{})
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestPersisterWritesLastChange(t *testing.T) {
	store := newCountingStore()
	p, err := New(store, Options{Key: "app", Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	for i := range 5 {
		p.Schedule(map[string]int{"n": i}, state.NewFocus())
	}
	require.True(t, p.Pending())

	var v []byte
	require.Eventually(t, func() bool {
		var ok bool
		v, ok, _ = store.Load(context.Background(), "app")
		return ok
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, int32(1), store.saves.Load())
	require.JSONEq(t, `{"n":4}`, jsonField(t, v, "data"))
}

func TestPersisterCancelAndFlush(t *testing.T) {
	store := newCountingStore()
	p, err := New(store, Options{Key: "app", Debounce: time.Hour})
	require.NoError(t, err)

	p.Schedule("first", state.NewFocus())
	p.Cancel()
	require.False(t, p.Pending())

	p.Schedule("second", state.NewFocus())
	p.Flush()
	require.Equal(t, int32(1), store.saves.Load())

	p.Close()
	p.Schedule("after close", state.NewFocus())
	require.False(t, p.Pending())
}

func TestPersisterSwallowsWriteFailure(t *testing.T) {
	var buf bytes.Buffer
	store := newCountingStore()
	store.fail.Store(true)
	p, err := New(store, Options{
		Key:      "app",
		Debounce: time.Hour,
		Logger:   slog.New(slog.NewTextHandler(&buf, nil)),
	})
	require.NoError(t, err)

	p.Schedule("data", state.NewFocus())
	p.Flush()

	require.Contains(t, buf.String(), "persist write failed")
	require.Contains(t, buf.String(), "disk full")
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p, err := New(store, Options{Key: "app", Debounce: time.Hour})
	require.NoError(t, err)

	saved := defaultPrefs()
	saved.Theme = "dark"
	f := state.NewFocus().
		WithZone("list", state.ZoneState{}.WithFocus("b", 1).WithSelection([]string{"b"}, "b")).
		WithActive("list")
	p.Schedule(saved, f)
	p.Flush()

	data, focus, found := Restore(ctx, p, defaultPrefs(), state.NewFocus())
	require.True(t, found)
	require.Equal(t, "dark", data.Theme)
	require.Equal(t, 12, data.Size)
	require.Equal(t, "list", focus.ActiveZoneID)
	require.Equal(t, "b", focus.Zone("list").FocusedItemID)
	require.Equal(t, []string{"b"}, focus.Zone("list").Selection)
}

func TestRestoreFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "app", []byte(`garbage`)))
	p, err := New(store, Options{Key: "app"})
	require.NoError(t, err)

	data, focus, found := Restore(ctx, p, defaultPrefs(), state.NewFocus())
	require.False(t, found)
	require.Equal(t, defaultPrefs(), data)
	require.Empty(t, focus.ActiveZoneID)

	require.NoError(t, p.Clear(ctx))
	_, ok := p.Load(ctx)
	require.False(t, ok)
}

func jsonField(t *testing.T, doc []byte, field string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(doc, &m))
	b, err := json.Marshal(m[field])
	require.NoError(t, err)
	return string(b)
}
