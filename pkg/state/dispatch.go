package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/unbox/pkg/archive"
	"github.com/arthur-debert/unbox/pkg/types"
)

// noTarOutput is recorded as the file list when the external tar tool
// succeeds but prints nothing. An empty capture at this stage is not a
// failure; only an empty entry list at aggregation is.
const noTarOutput = "no tar output so far"

// bsdtarProbe distinguishes BSD tar, which prints the file list on stderr
// instead of stdout. Probed once per call, only on the external-tool path.
const bsdtarProbe = "tar --version | grep bsdtar"

// dispatch extracts the cached archive into the request's target using the
// strategy the request selects. It returns the ordered entry list, or a
// terminal Failed result when the external tool exits nonzero. A library
// extraction error yields an empty entry list, which aggregation treats as
// failure with rollback.
func dispatch(ctx context.Context, req types.ExtractionRequest, cachePath string, deps Deps, logger zerolog.Logger) ([]string, *types.Result) {
	switch req.Format {
	case types.FormatZip:
		logger.Debug().Str("cache", cachePath).Msg("extracting zip archive")
		entries, err := deps.Extractor.Unzip(cachePath, req.Target)
		if err != nil {
			logger.Debug().Err(err).Msg("zip extraction failed")
			return nil, nil
		}
		return entries, nil

	case types.FormatRar:
		logger.Debug().Str("cache", cachePath).Msg("extracting rar archive")
		entries, err := deps.Extractor.Unrar(cachePath, req.Target)
		if err != nil {
			logger.Debug().Err(err).Msg("rar extraction failed")
			return nil, nil
		}
		return entries, nil

	default:
		if req.TarOptions == "" {
			logger.Debug().Str("cache", cachePath).Msg("extracting tar archive with built-in decoder")
			entries, err := deps.Extractor.Untar(cachePath, req.Target)
			if err != nil {
				logger.Debug().Err(err).Msg("tar extraction failed")
				return nil, nil
			}
			return entries, nil
		}
		return runTarTool(ctx, req, cachePath, deps, logger)
	}
}

// runTarTool extracts via the external tar executable. The user's options
// are normalized so the invocation always extracts and always names the
// archive; the tool runs with the target as its working directory.
func runTarTool(ctx context.Context, req types.ExtractionRequest, cachePath string, deps Deps, logger zerolog.Logger) ([]string, *types.Result) {
	flags := archive.NormalizeTarFlags(req.TarOptions)
	command := fmt.Sprintf("tar %s %q", strings.Join(flags, " "), cachePath)
	logger.Debug().Str("command", command).Msg("extracting with external tar")

	result := deps.Runner.Run(ctx, command, req.Target)
	if !result.Succeeded() {
		// Hard failure: no rollback, state is left as the tool left it.
		// The raw command result is attached for diagnosis.
		return nil, &types.Result{
			Outcome: types.OutcomeFailed,
			Changes: types.Changes{CommandOutput: &result},
			Message: fmt.Sprintf("tar failed with exit code %d", result.ExitCode),
		}
	}

	// BSD tar reports the file list on stderr.
	output := result.Stdout
	if deps.Runner.Run(ctx, bsdtarProbe, "").Succeeded() {
		output = result.Stderr
	}

	entries := splitLines(output)
	if len(entries) == 0 {
		entries = []string{noTarOutput}
	}
	return entries, nil
}

// splitLines breaks command output into non-empty lines.
func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
