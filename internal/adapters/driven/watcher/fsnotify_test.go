package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
)

func collectEvent(t *testing.T, events <-chan driven.FileEvent) driven.FileEvent {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "event channel closed unexpectedly")
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return driven.FileEvent{}
	}
}

func TestWatcher(t *testing.T) {
	t.Run("emits one event for a write burst", func(t *testing.T) {
		dir := t.TempDir()
		w, err := New(WithDebounce(50 * time.Millisecond))
		require.NoError(t, err)
		defer w.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := w.Watch(ctx, dir)
		require.NoError(t, err)

		path := filepath.Join(dir, "book.txt")
		require.NoError(t, os.WriteFile(path, []byte("chapter one"), 0600))
		require.NoError(t, os.WriteFile(path, []byte("chapter one, longer"), 0600))
		require.NoError(t, os.WriteFile(path, []byte("chapter one, longer still"), 0600))

		event := collectEvent(t, events)
		assert.Equal(t, path, event.Path)

		// The burst collapsed; no second event arrives.
		select {
		case extra := <-events:
			t.Fatalf("unexpected extra event: %+v", extra)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("ignores unwatched extensions", func(t *testing.T) {
		dir := t.TempDir()
		w, err := New(WithDebounce(50 * time.Millisecond))
		require.NoError(t, err)
		defer w.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := w.Watch(ctx, dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("x"), 0600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "book.txt"), []byte("y"), 0600))

		event := collectEvent(t, events)
		assert.Equal(t, filepath.Join(dir, "book.txt"), event.Path)
	})

	t.Run("removal is emitted without debounce delay", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "book.txt")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0600))

		w, err := New(WithDebounce(time.Hour))
		require.NoError(t, err)
		defer w.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := w.Watch(ctx, dir)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))

		event := collectEvent(t, events)
		assert.Equal(t, driven.FileRemoved, event.Op)
		assert.Equal(t, path, event.Path)
	})

	t.Run("watching a missing directory fails", func(t *testing.T) {
		w, err := New()
		require.NoError(t, err)
		defer w.Stop()

		_, err = w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("channel closes on context cancel", func(t *testing.T) {
		dir := t.TempDir()
		w, err := New()
		require.NoError(t, err)
		defer w.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		events, err := w.Watch(ctx, dir)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-events:
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("channel did not close after cancel")
		}
	})
}
