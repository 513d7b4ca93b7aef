package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/store"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDumpRendersDeclAndFoldableCall(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "counter.vhdlir")

	out, err := runCmd(t, "dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, "entity counter")
	assert.Contains(t, out, "constant_decl WIDTH")
	assert.Contains(t, out, "fcall")
}

func TestCheckFoldsConstantAndReportsZeroErrors(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "counter.vhdlir")

	out, err := runCmd(t, "check", path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheckPersistsRunsToStore(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "counter.vhdlir")
	dsn := filepath.Join(dir, "run.db")

	_, err := runCmd(t, "check", "--db", dsn, path)
	require.NoError(t, err)

	db, err := store.Connect(dsn, false)
	require.NoError(t, err)

	var units []store.Unit
	require.NoError(t, db.Find(&units).Error)
	require.Len(t, units, 1)
	assert.Equal(t, "counter", units[0].Name)
	assert.Equal(t, "entity", units[0].Kind)
}

func TestCheckRequiresAtLeastOneFile(t *testing.T) {
	dir := t.TempDir()
	_, err := runCmd(t, "check", dir)
	assert.Error(t, err)
}

func TestSessionsRequiresDBFlag(t *testing.T) {
	_, err := runCmd(t, "sessions")
	assert.Error(t, err)
}

func TestSessionsListsRecordedSessions(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "counter.vhdlir")
	dsn := filepath.Join(dir, "run.db")

	_, err := runCmd(t, "check", "--db", dsn, path)
	require.NoError(t, err)

	out, err := runCmd(t, "sessions", "--db", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "units=1")
	assert.Contains(t, out, "runs=1")
}
