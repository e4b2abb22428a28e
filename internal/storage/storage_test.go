package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/script"
)

func sampleRecords() []script.Script {
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	start := created.Add(time.Minute)
	end := start.Add(3 * time.Minute)

	a := script.New(script.WithTitle("A"), script.WithText("alpha **bold**"), script.WithClock(func() time.Time { return created }))
	a = script.SetAlignment(a, script.AlignRight)
	a.StartTime, a.EndTime = &start, &end

	b := script.New(script.WithTitle("B"), script.WithText("[mark] beta"), script.WithClock(func() time.Time { return created.Add(time.Hour) }))
	b.EndTime = &end
	return []script.Script{b, a}
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]Backend{
		"file":   NewFileGateway(filepath.Join(t.TempDir(), "data")),
		"sqlite": sq,
		"memory": NewMemoryGateway(),
	}
}

func TestGateway_Contract(t *testing.T) {
	for name, g := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, g.Load(HistoryKey), "absent key loads as empty")

			records := sampleRecords()
			require.NoError(t, g.Save(HistoryKey, records))

			got := g.Load(HistoryKey)
			require.Len(t, got, 2)
			assert.Equal(t, records[0].ID, got[0].ID, "order is preserved")
			assert.Equal(t, records[1].Settings, got[1].Settings)
			require.NotNil(t, got[1].StartTime)
			assert.True(t, records[1].StartTime.Equal(*got[1].StartTime))
			assert.Nil(t, got[0].StartTime)

			require.NoError(t, g.Save(HistoryKey, records[:1]))
			assert.Len(t, g.Load(HistoryKey), 1, "save replaces the whole list")

			assert.Empty(t, g.Load(DraftKey), "keys are independent")

			require.NoError(t, g.Save(HistoryKey, nil))
			assert.Empty(t, g.Load(HistoryKey))
		})
	}
}

func TestFileGateway_CorruptIsEmpty(t *testing.T) {
	dir := t.TempDir()
	g := NewFileGateway(dir)
	require.NoError(t, os.WriteFile(g.Path(HistoryKey), []byte("{not json"), 0o644))
	assert.Empty(t, g.Load(HistoryKey))
}

func TestFileGateway_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	g := NewFileGateway(dir)
	require.NoError(t, g.Save(HistoryKey, sampleRecords()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, HistoryKey+".json", entries[0].Name())
}

func TestFileGateway_PathSanitised(t *testing.T) {
	g := NewFileGateway("/data")
	assert.Equal(t, filepath.Join("/data", "a_b.json"), g.Path("a/b"))
}

func TestSQLiteGateway_CorruptIsEmpty(t *testing.T) {
	g, err := OpenSQLite(filepath.Join(t.TempDir(), "c.db"))
	require.NoError(t, err)
	defer g.Close()

	_, err = g.db.Exec("INSERT INTO kv (key, value, updated_at) VALUES (?, ?, 0)", HistoryKey, "[{")
	require.NoError(t, err)
	assert.Empty(t, g.Load(HistoryKey))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	b, err := Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &FileGateway{}, b)

	b, err = Open("SQLite", dir)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteGateway{}, b)
	require.NoError(t, b.Close())
	assert.FileExists(t, filepath.Join(dir, sqliteFileName))

	_, err = Open("redis", dir)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
