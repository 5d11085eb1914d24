package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "fitzer.json"))
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitzer.json")

	store := NewStore(path)
	require.NoError(t, store.SetToken("abc123"))
	require.NoError(t, store.SetTheme("dark"))
	require.NoError(t, store.SetPoints(150))

	// A fresh store over the same file sees the persisted values.
	reloaded := NewStore(path)
	assert.Equal(t, "abc123", reloaded.Token())
	assert.Equal(t, "dark", reloaded.Theme())
	assert.Equal(t, 150, reloaded.Points())
}

func TestStoreMissingKeysReadAsAbsent(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, "", store.Token())
	assert.Equal(t, "light", store.Theme())
	assert.Equal(t, 0, store.Points())

	_, ok := store.Snapshot()
	assert.False(t, ok)
	_, ok = store.DietPlan()
	assert.False(t, ok)
	assert.Empty(t, store.History())
}

func TestStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitzer.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)
	assert.Equal(t, "", store.Token())

	// Writes still work after recovering from corruption.
	require.NoError(t, store.SetToken("fresh"))
	assert.Equal(t, "fresh", NewStore(path).Token())
}

func TestStoreMalformedValueReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitzer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fitzer.points":"not-a-number"}`), 0o600))

	store := NewStore(path)
	assert.Equal(t, 0, store.Points())
}

func TestStoreLastWriteWins(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetTheme("dark"))
	require.NoError(t, store.SetTheme("light"))
	assert.Equal(t, "light", store.Theme())
}

func TestStoreSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetSnapshot(&models.BMIRecord{
		HeightCm: 175,
		WeightKg: 70,
		Age:      25,
		BMI:      22.9,
		Category: "Normal",
	}))

	snapshot, ok := store.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 22.9, snapshot.BMI)
	assert.Equal(t, "Normal", snapshot.Category)
}

func TestStoreHistoryCappedAtLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < HistoryLimit+6; i++ {
		require.NoError(t, store.AppendWeight(models.WeightEntry{
			WeightKg:   60 + float64(i),
			RecordedAt: time.Now(),
		}))
	}

	history := store.History()
	require.Len(t, history, HistoryLimit)
	// Newest first.
	assert.Equal(t, 60+float64(HistoryLimit+5), history[0].WeightKg)
}

func TestStoreDietPlanRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitzer.json")

	store := NewStore(path)
	require.NoError(t, store.SetDietPlan(&PlanRecord{
		DietType: "vegan",
		Category: "Normal",
		Items:    []string{"Oatmeal", "Salad"},
	}))

	// Diet type and category survive alongside the items, including
	// across a reload from disk.
	plan, ok := NewStore(path).DietPlan()
	require.True(t, ok)
	assert.Equal(t, "vegan", plan.DietType)
	assert.Equal(t, "Normal", plan.Category)
	assert.Equal(t, []string{"Oatmeal", "Salad"}, plan.Items)
}
