package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tarEntry struct {
	name    string
	content string
	dir     bool
}

func writeTarArchive(t *testing.T, path string, compress bool, entries []tarEntry) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, file.Close()) }()

	var out io.WriteCloser = file
	if compress {
		gz := gzip.NewWriter(file)
		defer func() { require.NoError(t, gz.Close()) }()
		out = gz
	}

	tw := tar.NewWriter(out)
	defer func() { require.NoError(t, tw.Close()) }()

	for _, e := range entries {
		header := &tar.Header{Name: e.name, Mode: 0644}
		if e.dir {
			header.Typeflag = tar.TypeDir
			header.Mode = 0755
		} else {
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(e.content))
		}
		require.NoError(t, tw.WriteHeader(header))
		if !e.dir {
			_, err := tw.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
}

func TestUntarPlain(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "app.tar")
	writeTarArchive(t, archivePath, false, []tarEntry{
		{name: "app/", dir: true},
		{name: "app/a.txt", content: "alpha"},
		{name: "app/b.txt", content: "beta"},
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(dest, 0755))

	names, err := NewExtractor().Untar(archivePath, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"app/", "app/a.txt", "app/b.txt"}, names)

	content, err := os.ReadFile(filepath.Join(dest, "app", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(content))
}

func TestUntarGzip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "app.tar.gz")
	writeTarArchive(t, archivePath, true, []tarEntry{
		{name: "a.txt", content: "alpha"},
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(dest, 0755))

	names, err := NewExtractor().Untar(archivePath, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names)

	content, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(content))
}

func TestUntarEmptyArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "empty.tar")
	writeTarArchive(t, archivePath, false, nil)

	dest := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(dest, 0755))

	names, err := NewExtractor().Untar(archivePath, dest)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestUntarRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.tar")
	writeTarArchive(t, archivePath, false, []tarEntry{
		{name: "../evil.txt", content: "nope"},
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(dest, 0755))

	_, err := NewExtractor().Untar(archivePath, dest)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "evil.txt"))
}

func TestUntarMissingArchive(t *testing.T) {
	_, err := NewExtractor().Untar(filepath.Join(t.TempDir(), "missing.tar"), t.TempDir())
	require.Error(t, err)
}
