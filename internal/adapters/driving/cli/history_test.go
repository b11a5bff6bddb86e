package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
)

// mockHistoryStore records calls for assertions.
type mockHistoryStore struct {
	records []domain.SearchRecord
	cleared bool
	listErr error
}

func (m *mockHistoryStore) Record(_ context.Context, rec domain.SearchRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *mockHistoryStore) List(_ context.Context, limit int) ([]domain.SearchRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > 0 && limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

func (m *mockHistoryStore) Clear(_ context.Context) error {
	m.cleared = true
	m.records = nil
	return nil
}

func (m *mockHistoryStore) Close() error {
	return nil
}

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
}

func TestHistoryCmd_Unavailable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHistoryUnavailable)
}

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	historyStore = &mockHistoryStore{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No searches recorded.")
}

func TestHistoryCmd_ListsRecords(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	historyStore = &mockHistoryStore{
		records: []domain.SearchRecord{
			{
				ID:            "rec-1",
				Roots:         []string{"/srv/docs"},
				Include:       `\.txt$`,
				Exclude:       "^ignore_",
				IncludeHidden: true,
				Matches:       3,
				Errors:        1,
				StartedAt:     time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
				Duration:      125 * time.Millisecond,
			},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Recent searches:")
	assert.Contains(t, out, `\.txt$`)
	assert.Contains(t, out, "-e ^ignore_")
	assert.Contains(t, out, "-a")
	assert.Contains(t, out, "/srv/docs")
	assert.Contains(t, out, "3 match(es), 1 error(s)")
	assert.Contains(t, out, "125ms")
}

func TestHistoryCmd_LimitFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	store := &mockHistoryStore{
		records: []domain.SearchRecord{
			{ID: "rec-1", Include: "first"},
			{ID: "rec-2", Include: "second"},
		},
	}
	historyStore = store

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "-n", "1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "first")
	assert.NotContains(t, buf.String(), "second")
}

func TestHistoryClearCmd_Clears(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	store := &mockHistoryStore{
		records: []domain.SearchRecord{{ID: "rec-1"}},
	}
	historyStore = store

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, store.cleared)
	assert.Contains(t, buf.String(), "History cleared.")
}

func TestHistoryClearCmd_Unavailable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHistoryUnavailable)
}
