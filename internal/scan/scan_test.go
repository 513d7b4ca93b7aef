package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/scan"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("-- vhdl\n"), 0o644))
}

func TestWalkerDiscoversVHDLFilesByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.vhd"))
	writeFile(t, filepath.Join(root, "pkg.vhdl"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "sub", "child.vhd"))

	w := scan.NewWalker()
	files, err := w.Discover(context.Background(), scan.Scope{Path: root})
	require.NoError(t, err)
	sort.Strings(files)

	require.Len(t, files, 3)
	for _, f := range files {
		require.True(t, f != filepath.Join(root, "notes.txt"))
	}
}

func TestWalkerHonorsExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.vhd"))
	writeFile(t, filepath.Join(root, "vendor", "ip.vhd"))

	w := scan.NewWalker()
	files, err := w.Discover(context.Background(), scan.Scope{
		Path:    root,
		Exclude: []string{"**/vendor/**"},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, filepath.Join(root, "top.vhd"), files[0])
}

func TestWalkerRejectsNonDirectoryPath(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "top.vhd")
	writeFile(t, file)

	w := scan.NewWalker()
	_, err := w.Discover(context.Background(), scan.Scope{Path: file})
	require.Error(t, err)
}

func TestWalkerRespectsMaxFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.vhd"))
	writeFile(t, filepath.Join(root, "b.vhd"))
	writeFile(t, filepath.Join(root, "c.vhd"))

	w := scan.NewWalker()
	files, err := w.Discover(context.Background(), scan.Scope{Path: root, MaxFiles: 1})
	require.NoError(t, err)
	require.Len(t, files, 1)
}
