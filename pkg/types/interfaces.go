package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem interface required for unbox operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// DirExists reports whether path exists and is a directory.
func DirExists(filesystem FS, path string) bool {
	info, err := filesystem.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(filesystem FS, path string) bool {
	info, err := filesystem.Stat(path)
	return err == nil && !info.IsDir()
}

// PathExists reports whether path exists at all.
func PathExists(filesystem FS, path string) bool {
	_, err := filesystem.Stat(path)
	return err == nil
}

// FetchRequest describes one archive download.
type FetchRequest struct {
	// Destination is the local path the archive must end up at.
	Destination string

	// Source locates the archive, same syntax the caller supplied.
	Source string

	// SourceHash is an optional integrity descriptor ("md5=...",
	// "sha256=...", or a bare hex digest).
	SourceHash string

	// MakeDirs requests creation of the destination's parent directories.
	MakeDirs bool

	// Environment is an opaque environment tag forwarded from the runtime
	// configuration.
	Environment string
}

// Fetcher downloads archives into the local cache. A failed fetch is
// reported as a Failed Result; the reconciler propagates it verbatim, so
// whatever the fetcher records (message, changes) reaches the caller
// unwrapped. Retry and timeout policy live here, not in the reconciler.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) *Result
}

// Extractor provides the built-in archive decoding capabilities. Each
// method extracts archive into dest and returns the entry names in archive
// order.
type Extractor interface {
	Unzip(archive, dest string) ([]string, error)
	Unrar(archive, dest string) ([]string, error)
	Untar(archive, dest string) ([]string, error)
}

// Runner executes a shell command line in a working directory and reports
// its exit code and captured output. It never returns an error for a
// nonzero exit; that is part of the result.
type Runner interface {
	Run(ctx context.Context, command, dir string) CommandResult
}
