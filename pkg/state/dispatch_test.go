package state_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/unbox/pkg/state"
	"github.com/arthur-debert/unbox/pkg/types"
)

const bsdtarProbe = "tar --version | grep bsdtar"

// tarToolEnv prepares an env with a cached archive and a request routed
// through the external tar tool.
func tarToolEnv(t *testing.T, tarOptions string) (*testEnv, types.ExtractionRequest, string) {
	t.Helper()
	env := newTestEnv()
	req := tarRequest()
	req.TarOptions = tarOptions

	cachePath := state.CachePath(env.opts.CacheRoot, req.Marker(), string(req.Format))
	require.NoError(t, env.fs.WriteFile(cachePath, []byte("archive"), 0644))
	return env, req, cachePath
}

func TestTarToolOptionNormalization(t *testing.T) {
	env, req, cachePath := tarToolEnv(t, "J")
	env.runner.Results = map[string]types.CommandResult{
		bsdtarProbe: {ExitCode: 1},
	}

	env.extracted(t, req)

	require.NotEmpty(t, env.runner.Calls)
	command := env.runner.Calls[0].Command
	assert.Equal(t, fmt.Sprintf("tar -x -J -f %q", cachePath), command)
	assert.Equal(t, "/opt", env.runner.Calls[0].Dir, "tar runs in the target directory")
}

func TestTarToolGNUReadsStdout(t *testing.T) {
	env, req, cachePath := tarToolEnv(t, "J")
	command := fmt.Sprintf("tar -x -J -f %q", cachePath)
	env.runner.Results = map[string]types.CommandResult{
		command:     {ExitCode: 0, Stdout: "a.txt\nb.txt\n", Stderr: "noise\n"},
		bsdtarProbe: {ExitCode: 1},
	}

	result := env.extracted(t, req)

	assert.Equal(t, types.OutcomeChanged, result.Outcome)
	assert.Equal(t, []string{"a.txt", "b.txt"}, result.Changes.ExtractedFiles)
}

func TestTarToolBSDReadsStderr(t *testing.T) {
	env, req, cachePath := tarToolEnv(t, "J")
	command := fmt.Sprintf("tar -x -J -f %q", cachePath)
	env.runner.Results = map[string]types.CommandResult{
		command:     {ExitCode: 0, Stdout: "", Stderr: "x a.txt\nx b.txt\n"},
		bsdtarProbe: {ExitCode: 0},
	}

	result := env.extracted(t, req)

	assert.Equal(t, types.OutcomeChanged, result.Outcome)
	assert.Equal(t, []string{"x a.txt", "x b.txt"}, result.Changes.ExtractedFiles)
}

func TestTarToolEmptyOutputPlaceholder(t *testing.T) {
	env, req, cachePath := tarToolEnv(t, "J")
	command := fmt.Sprintf("tar -x -J -f %q", cachePath)
	env.runner.Results = map[string]types.CommandResult{
		command:     {ExitCode: 0},
		bsdtarProbe: {ExitCode: 1},
	}

	result := env.extracted(t, req)

	// Empty tool output is not a failure at this stage; a placeholder
	// stands in for the file list.
	assert.Equal(t, types.OutcomeChanged, result.Outcome)
	assert.Equal(t, []string{"no tar output so far"}, result.Changes.ExtractedFiles)
}

func TestTarToolFailureNoRollback(t *testing.T) {
	env, req, cachePath := tarToolEnv(t, "J")
	command := fmt.Sprintf("tar -x -J -f %q", cachePath)
	env.runner.Results = map[string]types.CommandResult{
		command: {ExitCode: 2, Stderr: "tar: invalid option"},
	}

	result := env.extracted(t, req)

	assert.Equal(t, types.OutcomeFailed, result.Outcome)
	require.NotNil(t, result.Changes.CommandOutput)
	assert.Equal(t, 2, result.Changes.CommandOutput.ExitCode)
	assert.Equal(t, "tar: invalid option", result.Changes.CommandOutput.Stderr)

	// No cleanup and no rollback: the cache survives and nothing was
	// removed.
	assert.True(t, types.PathExists(env.fs, cachePath))
	assert.Zero(t, env.fs.RemoveCalls)
	assert.Zero(t, env.fs.RemoveAllCalls)
}

func TestTarToolOnlyUsedWhenOptionsSet(t *testing.T) {
	env := newTestEnv()
	env.extractor.Entries = []string{"a.txt"}

	env.extracted(t, tarRequest())

	assert.Empty(t, env.runner.Calls, "built-in decoder path must not shell out")
	require.Len(t, env.extractor.UntarCalls, 1)
}
