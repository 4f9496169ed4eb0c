// Package shell runs command lines through an embedded POSIX shell
// interpreter. Using an interpreter instead of exec'ing /bin/sh keeps
// behavior identical across platforms, including pipes and quoting.
package shell

import (
	"bytes"
	"context"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/types"
)

// runner implements types.Runner with mvdan.cc/sh.
type runner struct{}

// NewRunner returns the shell command runner used for external tools.
func NewRunner() types.Runner {
	return &runner{}
}

// Run executes command in dir and captures its output. A nonzero exit is
// reported in the result, never as an error; parse and setup failures are
// mapped to exit code 1 with the error text on stderr.
func (r *runner) Run(ctx context.Context, command, dir string) types.CommandResult {
	logger := logging.GetLogger("shell")
	logger.Debug().Str("command", command).Str("dir", dir).Msg("running command")

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		return types.CommandResult{ExitCode: 1, Stderr: "parse error: " + err.Error()}
	}

	var stdout, stderr bytes.Buffer
	opts := []interp.RunnerOption{
		interp.StdIO(nil, &stdout, &stderr),
	}
	if dir != "" {
		opts = append(opts, interp.Dir(dir))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return types.CommandResult{ExitCode: 1, Stderr: "interpreter error: " + err.Error()}
	}

	result := types.CommandResult{}
	if err := sh.Run(ctx, prog); err != nil {
		if exitStatus, ok := interp.IsExitStatus(err); ok {
			result.ExitCode = int(exitStatus)
		} else {
			result.ExitCode = 1
			if stderr.Len() == 0 {
				stderr.WriteString(err.Error())
			}
		}
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	logger.Debug().Int("exit_code", result.ExitCode).Msg("command finished")
	return result
}
