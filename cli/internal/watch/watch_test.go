package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "requests.yaml")
	require.NoError(t, os.WriteFile(file, []byte("[]\n"), 0644))

	var calls atomic.Int32
	w, err := NewWatcher(file, func() error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// writes to siblings are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(file, []byte("- text: bread\n"), 0644))
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestWatcher_InitialCallbackError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "requests.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	boom := errors.New("boom")
	w, err := NewWatcher(file, func() error { return boom })
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "requests.yaml"), func() error { return nil })
	assert.Error(t, err)
}
