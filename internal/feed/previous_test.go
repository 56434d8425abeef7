package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadFile_Absent(t *testing.T) {
	t.Parallel()

	prev, err := ReadFile(filepath.Join(t.TempDir(), "missing.atom"))
	require.NoError(t, err, "первый запуск — не ошибка")
	require.Nil(t, prev)
}

func TestReadFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.atom")
	require.NoError(t, os.WriteFile(path, []byte("not a feed"), 0o644))

	_, err := ReadFile(path)
	require.Error(t, err)
}

func TestPrevious_LastUpdated(t *testing.T) {
	t.Parallel()

	fallback := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	// Нет фида вовсе.
	var nilPrev *Previous
	require.True(t, nilPrev.LastUpdated(fallback).Equal(fallback))

	// Самая поздняя метка среди записей.
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	b := NewBuilder(testFeedConfig(), now)

	oldest := testListing("1", 10)
	oldest.StartTime = now.AddDate(0, 0, -10)
	newest := testListing("2", 2)
	newest.StartTime = now.AddDate(0, 0, -2)
	require.True(t, b.Add(oldest))
	require.True(t, b.Add(newest))

	prev := roundTrip(t, b)
	require.True(t, prev.LastUpdated(fallback).Equal(newest.StartTime))
}

func TestEntryID_RoundTrip(t *testing.T) {
	t.Parallel()

	id := EntryID("123456789012")
	got, ok := ParseListingID(id)
	require.True(t, ok)
	require.Equal(t, "123456789012", got)

	_, ok = ParseListingID("tag:market-feed.pribylovaa.dev,2025:listing-abc")
	require.False(t, ok, "нечисловой идентификатор лота не разбирается")

	_, ok = ParseListingID("")
	require.False(t, ok)
}
