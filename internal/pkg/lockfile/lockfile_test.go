package lockfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquire_Release(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "market-feed.lock")

	l, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, l.Release())

	// После освобождения блокировка берётся снова.
	l2, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, l2.Release())
}

func TestAcquire_Held(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "market-feed.lock")

	l, err := Acquire(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Release() })

	// Повторный захват через отдельный файловый дескриптор конфликтует.
	_, err = Acquire(path)
	require.ErrorIs(t, err, ErrLocked)
}
