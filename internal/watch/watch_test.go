package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/findnonascii/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// start runs w in the background and returns the names handled.
func start(t *testing.T, w *Watcher) (<-chan string, context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	names := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, name string) error {
			names <- name
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		_ = w.Close()
	})
	return names, cancel, done
}

func TestNew_NothingToWatch(t *testing.T) {
	_, err := New([]string{"-"})
	assert.ErrorIs(t, err, ErrNothingToWatch)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrNothingToWatch)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "file.txt")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestNew_Files(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	w, err := New([]string{b, "-", a, b})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	assert.Equal(t, []string{b, a}, w.Files())
}

func TestRun_ReportsChangedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	other := filepath.Join(dir, "other.txt")
	writeFile(t, target, "x")

	w, err := New([]string{target}, WithDebounce(20*time.Millisecond), WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	names, cancel, done := start(t, w)

	writeFile(t, other, "ignored")
	writeFile(t, target, "café")

	select {
	case name := <-names:
		assert.Equal(t, target, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_Debounces(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	writeFile(t, target, "")

	w, err := New([]string{target}, WithDebounce(300*time.Millisecond))
	require.NoError(t, err)
	names, _, _ := start(t, w)

	for range 3 {
		writeFile(t, target, "again")
	}

	select {
	case <-names:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case name := <-names:
		t.Fatalf("unexpected second call for %s", name)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRun_HandlerError(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	writeFile(t, target, "")

	w, err := New([]string{target}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	boom := errors.New("boom")
	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(context.Context, string) error { return boom })
	}()

	writeFile(t, target, "x")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return the handler error")
	}
}
