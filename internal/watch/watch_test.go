package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
	return Event{}
}

func TestWatcherReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "take1.wav")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(tracked, []byte("RIFF"), 0644))

	w, err := New()
	require.NoError(t, err)
	defer w.Close()
	w.Sync([]string{tracked})

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, os.Remove(tracked))

	ev := next(t, w)
	assert.Equal(t, tracked, ev.Path)
	assert.Equal(t, Removed, ev.Op)
}

func TestWatcherReportsRewrite(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "take2.wav")
	require.NoError(t, os.WriteFile(tracked, []byte("RIFF"), 0644))

	w, err := New()
	require.NoError(t, err)
	defer w.Close()
	w.Sync([]string{tracked})

	require.NoError(t, os.WriteFile(tracked, []byte("RIFF....WAVE"), 0644))

	ev := next(t, w)
	assert.Equal(t, tracked, ev.Path)
	assert.Equal(t, Changed, ev.Op)
}

func TestSyncDropsUntrackedDirectories(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()

	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	w.Sync([]string{filepath.Join(a, "1.wav"), filepath.Join(b, "2.wav")})
	assert.Len(t, w.dirs, 2)

	w.Sync([]string{filepath.Join(b, "2.wav"), filepath.Join(b, "3.wav")})
	assert.Len(t, w.dirs, 1)
	assert.Contains(t, w.dirs, b)
	assert.Len(t, w.tracked, 2)

	w.Sync(nil)
	assert.Empty(t, w.dirs)
}

func TestCloseEndsEvents(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "removed", Removed.String())
	assert.Equal(t, "changed", Changed.String())
}
