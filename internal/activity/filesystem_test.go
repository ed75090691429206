package activity

import (
	"path/filepath"
	"testing"
	"time"

	"sessiond/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) IJournal {
	t.Helper()
	journal := NewFilesystemJournal(models.JournalConfiguration{
		Enabled:   true,
		Directory: filepath.Join(t.TempDir(), "journal.bleve"),
	})
	t.Cleanup(func() { _ = journal.Close() })
	return journal
}

func recordEntry(t *testing.T, journal IJournal, action string, at time.Time, isAuthenticated bool) {
	t.Helper()
	require.NoError(t, journal.Record(Entry{
		Action:          action,
		At:              at,
		IsAuthenticated: isAuthenticated,
	}))
}

func TestFilesystemJournal_RecordAndSearch(t *testing.T) {
	journal := newTestJournal(t)

	now := time.Now()
	recordEntry(t, journal, "auth/loginSuccess", now, true)
	recordEntry(t, journal, "auth/logoutSuccess", now.Add(-time.Second), false)
	recordEntry(t, journal, "session/hydrate", now.Add(-2*time.Second), true)

	t.Run("filtered by action", func(t *testing.T) {
		entries, err := journal.Search(map[string][]string{
			"action": {"auth/loginSuccess"},
		})
		require.NoError(t, err)

		require.Len(t, entries, 1)
		assert.Equal(t, "auth/loginSuccess", entries[0].Action)
		assert.True(t, entries[0].IsAuthenticated)
		assert.WithinDuration(t, now, entries[0].At, time.Second)
	})

	t.Run("unfiltered returns everything, newest first", func(t *testing.T) {
		entries, err := journal.Search(map[string][]string{})
		require.NoError(t, err)

		require.Len(t, entries, 3)
		assert.Equal(t, "auth/loginSuccess", entries[0].Action)
		assert.Equal(t, "auth/logoutSuccess", entries[1].Action)
		assert.Equal(t, "session/hydrate", entries[2].Action)
	})
}

func TestFilesystemJournal_SearchWithORCriteria(t *testing.T) {
	journal := newTestJournal(t)

	now := time.Now()
	recordEntry(t, journal, "auth/loginSuccess", now, true)
	recordEntry(t, journal, "auth/logoutSuccess", now.Add(-time.Second), false)
	recordEntry(t, journal, "session/hydrate", now.Add(-2*time.Second), true)

	entries, err := journal.Search(map[string][]string{
		"action": {"auth/loginSuccess", "auth/logoutSuccess"},
	})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	actions := map[string]bool{}
	for _, entry := range entries {
		actions[entry.Action] = true
	}
	assert.True(t, actions["auth/loginSuccess"])
	assert.True(t, actions["auth/logoutSuccess"])
}

func TestFilesystemJournal_SearchRespectsTimeWindow(t *testing.T) {
	journal := newTestJournal(t)

	recordEntry(t, journal, "auth/loginSuccess", time.Now().AddDate(0, 0, -60), true)
	recordEntry(t, journal, "auth/loginSuccess", time.Now(), true)

	entries, err := journal.Search(map[string][]string{
		"action": {"auth/loginSuccess"},
	})
	require.NoError(t, err)

	require.Len(t, entries, 1, "entries older than 30 days stay out of results")
	assert.WithinDuration(t, time.Now(), entries[0].At, time.Minute)
}

func TestFilesystemJournal_CountByDay(t *testing.T) {
	journal := newTestJournal(t)

	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)
	recordEntry(t, journal, "auth/loginSuccess", today, true)
	recordEntry(t, journal, "auth/logoutSuccess", today.Add(-time.Minute), false)
	recordEntry(t, journal, "auth/loginSuccess", yesterday, true)

	points, err := journal.CountByDay(map[string][]string{}, 7)
	require.NoError(t, err)

	total := int64(0)
	for _, point := range points {
		total += point.Count
	}
	assert.EqualValues(t, 3, total)

	t.Run("criteria narrow the aggregation", func(t *testing.T) {
		points, err := journal.CountByDay(map[string][]string{
			"action": {"auth/loginSuccess"},
		}, 7)
		require.NoError(t, err)

		total := int64(0)
		for _, point := range points {
			total += point.Count
		}
		assert.EqualValues(t, 2, total)
	})
}
