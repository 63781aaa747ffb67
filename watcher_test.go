package toolfile

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchNotifiesOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ts, err := New(dir)
	require.NoError(t, err)

	var n atomic.Int32
	w, err := ts.Watch(func() { n.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "calc_tool.go", calcToolSrc)

	require.Eventually(t, func() bool { return n.Load() >= 1 },
		3*time.Second, 20*time.Millisecond)
}

func TestWatchNotifiesAgainAfterSettle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ts, err := New(dir)
	require.NoError(t, err)

	var n atomic.Int32
	w, err := ts.Watch(func() { n.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "calc_tool.go", calcToolSrc)
	require.Eventually(t, func() bool { return n.Load() >= 1 },
		3*time.Second, 20*time.Millisecond)

	seen := n.Load()
	writeFile(t, dir, "other_tool.go", calcToolSrc)
	require.Eventually(t, func() bool { return n.Load() > seen },
		3*time.Second, 20*time.Millisecond)
}

func TestWatchIgnoresForeignExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ts, err := New(dir)
	require.NoError(t, err)

	var n atomic.Int32
	w, err := ts.Watch(func() { n.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "notes.txt", "not a tool")

	time.Sleep(2 * watchDebounce)
	assert.Zero(t, n.Load())
}

func TestWatchNewSubdirJoinsWatchSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ts, err := New(dir, WithMaxDepth(1))
	require.NoError(t, err)

	var n atomic.Int32
	w, err := ts.Watch(func() { n.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool { return n.Load() >= 1 },
		3*time.Second, 20*time.Millisecond)

	seen := n.Load()
	writeFile(t, sub, "beta_tool.go", calcToolSrc)
	require.Eventually(t, func() bool { return n.Load() > seen },
		3*time.Second, 20*time.Millisecond)
}

func TestWatchBeyondDepthIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ts, err := New(dir) // depth 0: base directory only
	require.NoError(t, err)

	var n atomic.Int32
	w, err := ts.Watch(func() { n.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "deep_tool.go", calcToolSrc)

	time.Sleep(2 * watchDebounce)
	assert.Zero(t, n.Load())
}

func TestWatchThenRescan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ts, err := New(dir)
	require.NoError(t, err)
	require.Empty(t, ts.Names())

	changed := make(chan struct{}, 1)
	w, err := ts.Watch(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "calc_tool.go", calcToolSrc)

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	require.NoError(t, ts.Rescan())
	assert.Equal(t, []string{"calc"}, ts.Names())
}

func TestWatchClosedStopsNotifying(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ts, err := New(dir)
	require.NoError(t, err)

	var n atomic.Int32
	w, err := ts.Watch(func() { n.Add(1) })
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "closing twice must be safe")

	writeFile(t, dir, "calc_tool.go", calcToolSrc)
	time.Sleep(2 * watchDebounce)
	assert.Zero(t, n.Load())
}

func TestWatchNilCallback(t *testing.T) {
	t.Parallel()

	ts, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = ts.Watch(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "onChange must not be nil")
}

func TestWatchMissingBaseDir(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	dir := filepath.Join(parent, "tools")
	require.NoError(t, os.Mkdir(dir, 0o755))

	ts, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))

	_, err = ts.Watch(func() {})
	require.Error(t, err)
}
