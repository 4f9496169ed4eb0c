package testutil

import (
	"context"
	"io/fs"

	"github.com/arthur-debert/unbox/pkg/types"
)

// FakeFetcher implements types.Fetcher. It records every request and, on
// success, materializes the destination file on the provided filesystem so
// subsequent cache checks see it.
type FakeFetcher struct {
	FS     types.FS
	Result *types.Result // returned as-is; nil means a generic success
	Calls  []types.FetchRequest
}

func (f *FakeFetcher) Fetch(ctx context.Context, req types.FetchRequest) *types.Result {
	f.Calls = append(f.Calls, req)

	result := f.Result
	if result == nil {
		result = types.ChangedResult(types.Changes{}, "%s downloaded to %s", req.Source, req.Destination)
	}
	if result.Outcome != types.OutcomeFailed && f.FS != nil {
		_ = f.FS.WriteFile(req.Destination, []byte("archive-bytes"), 0644)
	}
	return result
}

// FakeExtractor implements types.Extractor with scripted entry lists.
type FakeExtractor struct {
	Entries []string
	Err     error

	UnzipCalls [][2]string
	UnrarCalls [][2]string
	UntarCalls [][2]string
}

func (f *FakeExtractor) Unzip(archive, dest string) ([]string, error) {
	f.UnzipCalls = append(f.UnzipCalls, [2]string{archive, dest})
	return f.Entries, f.Err
}

func (f *FakeExtractor) Unrar(archive, dest string) ([]string, error) {
	f.UnrarCalls = append(f.UnrarCalls, [2]string{archive, dest})
	return f.Entries, f.Err
}

func (f *FakeExtractor) Untar(archive, dest string) ([]string, error) {
	f.UntarCalls = append(f.UntarCalls, [2]string{archive, dest})
	return f.Entries, f.Err
}

// RunCall records one FakeRunner invocation.
type RunCall struct {
	Command string
	Dir     string
}

// FakeRunner implements types.Runner with per-command scripted results.
// Commands without a scripted result get a zero-exit empty result.
type FakeRunner struct {
	Results map[string]types.CommandResult
	Calls   []RunCall
}

func (f *FakeRunner) Run(ctx context.Context, command, dir string) types.CommandResult {
	f.Calls = append(f.Calls, RunCall{Command: command, Dir: dir})
	if result, ok := f.Results[command]; ok {
		return result
	}
	return types.CommandResult{}
}

// CountingFS wraps a types.FS and counts mutating calls, so tests can
// assert preview purity.
type CountingFS struct {
	types.FS
	MkdirAllCalls  int
	RemoveCalls    int
	RemoveAllCalls int
	WriteCalls     int
}

func (c *CountingFS) MkdirAll(path string, perm fs.FileMode) error {
	c.MkdirAllCalls++
	return c.FS.MkdirAll(path, perm)
}

func (c *CountingFS) Remove(name string) error {
	c.RemoveCalls++
	return c.FS.Remove(name)
}

func (c *CountingFS) RemoveAll(path string) error {
	c.RemoveAllCalls++
	return c.FS.RemoveAll(path)
}

func (c *CountingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	c.WriteCalls++
	return c.FS.WriteFile(name, data, perm)
}

// Mutations reports the total number of mutating filesystem calls seen.
func (c *CountingFS) Mutations() int {
	return c.MkdirAllCalls + c.RemoveCalls + c.RemoveAllCalls + c.WriteCalls
}
