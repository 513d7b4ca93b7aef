package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/diag"
	"github.com/termfx/vhdlcore/internal/simp"
	"github.com/termfx/vhdlcore/internal/store"
)

func TestConnectFileDatabase(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "vhdlsimp.db")
	db, err := store.Connect(dsn, false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.NoError(t, sqlDB.Ping())
}

func TestConnectRejectsUnreachableLibsqlURL(t *testing.T) {
	_, err := store.Connect("libsql://127.0.0.1:1/nonexistent", false)
	assert.Error(t, err)
}

func TestRecorderRecordsUnitsAndRuns(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "session.db")
	db, err := store.Connect(dsn, false)
	require.NoError(t, err)

	rec, err := store.NewRecorder(db)
	require.NoError(t, err)

	stats := simp.Stats{Folded: 2, DeadEliminated: 1}
	diags := []*diag.Diag{diag.New(diag.Warn, 0, "unfoldable reference")}

	require.NoError(t, rec.RecordUnit("entity", "counter", "counter.vhdlir", "local", stats, diags, 0))
	require.NoError(t, rec.Close())

	var sessions []store.Session
	require.NoError(t, db.Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].UnitsCount)
	assert.Equal(t, 1, sessions[0].RunsCount)
	assert.NotNil(t, sessions[0].EndedAt)

	var units []store.Unit
	require.NoError(t, db.Find(&units).Error)
	require.Len(t, units, 1)
	assert.Equal(t, "counter", units[0].Name)
	assert.Equal(t, "entity", units[0].Kind)

	var runs []store.SimplifyRun
	require.NoError(t, db.Find(&runs).Error)
	require.Len(t, runs, 1)
	assert.Equal(t, "local", runs[0].Mode)
	assert.Contains(t, string(runs[0].Diagnostics), "unfoldable reference")
}
