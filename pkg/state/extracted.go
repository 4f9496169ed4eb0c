package state

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/types"
)

// Options are the process-wide settings a reconciliation call runs under.
type Options struct {
	// CacheRoot is the directory downloaded archives are cached in.
	CacheRoot string

	// Preview reports what would change without mutating anything.
	Preview bool

	// Environment is an opaque tag forwarded to the fetcher.
	Environment string
}

// Deps are the collaborators a reconciliation call drives. Every field is
// required.
type Deps struct {
	FS        types.FS
	Fetcher   types.Fetcher
	Extractor types.Extractor
	Runner    types.Runner
}

// Extracted reconciles one extraction request and returns the terminal
// result. It is a single synchronous call: no retries, no internal
// concurrency, no persistent state beyond the cache directory contents.
func Extracted(ctx context.Context, req types.ExtractionRequest, opts Options, deps Deps) *types.Result {
	logger := logging.GetLogger("state.extracted").With().
		Str("target", req.Target).
		Str("source", req.Source).
		Bool("preview", opts.Preview).
		Logger()

	// Format validation comes first, before any filesystem access.
	if _, err := types.ParseFormat(string(req.Format)); err != nil {
		return types.FailedResult("%s is not supported, valids: %s", req.Format, types.FormatList())
	}

	// Presence check: the sole idempotency gate, checked exactly once.
	marker := req.Marker()
	if types.DirExists(deps.FS, marker) || types.FileExists(deps.FS, marker) {
		return types.SatisfiedResult("%s already exists", marker)
	}

	logger.Debug().Msg("input valid so far")

	// Cache resolution: fetch only when the archive is not already cached.
	cachePath := CachePath(opts.CacheRoot, marker, string(req.Format))
	if !types.PathExists(deps.FS, cachePath) {
		if opts.Preview {
			return types.SatisfiedResult("archive %s would have been downloaded to cache", req.Source)
		}

		logger.Debug().Str("cache", cachePath).Msg("archive not in cache, downloading")
		fetchResult := deps.Fetcher.Fetch(ctx, types.FetchRequest{
			Destination: cachePath,
			Source:      req.Source,
			SourceHash:  req.SourceHash,
			MakeDirs:    true,
			Environment: opts.Environment,
		})
		if fetchResult.Outcome == types.OutcomeFailed {
			// Deliberate pass-through: the fetcher's result reaches the
			// caller unwrapped.
			logger.Debug().Str("message", fetchResult.Message).Msg("fetch failed")
			return fetchResult
		}
	} else {
		logger.Debug().Str("cache", cachePath).Msg("archive already in cache")
	}

	if opts.Preview {
		return types.SatisfiedResult("archive %s would have been extracted in %s", req.Source, req.Target)
	}

	if err := deps.FS.MkdirAll(req.Target, 0755); err != nil {
		return types.FailedResult("failed to create %s: %v", req.Target, err)
	}

	entries, failure := dispatch(ctx, req, cachePath, deps, logger)
	if failure != nil {
		return failure
	}

	return aggregate(req, marker, cachePath, entries, deps, logger)
}

// aggregate turns the dispatcher's entry list into the terminal result:
// success accounting and cache cleanup when entries were extracted,
// rollback of the presence marker when none were. Success is judged purely
// by whether any entries were reported; tool exit codes were already
// handled in dispatch.
func aggregate(req types.ExtractionRequest, marker, cachePath string, entries []string, deps Deps, logger zerolog.Logger) *types.Result {
	if len(entries) == 0 {
		// Rollback is best-effort; a failed removal is not separately
		// reported.
		if err := deps.FS.RemoveAll(marker); err != nil && !os.IsNotExist(err) {
			logger.Debug().Err(err).Str("marker", marker).Msg("rollback of presence marker failed")
		}
		return types.FailedResult("can't extract content of %s", req.Source)
	}

	changes := types.Changes{
		DirectoriesCreated: []string{req.Target},
		ExtractedFiles:     entries,
	}
	if marker != req.Target {
		changes.DirectoriesCreated = append(changes.DirectoriesCreated, marker)
	}

	if !req.Keep {
		if err := deps.FS.Remove(cachePath); err != nil {
			logger.Debug().Err(err).Str("cache", cachePath).Msg("failed to delete cached archive")
		}
	}

	return types.ChangedResult(changes, "%s extracted in %s", req.Source, req.Target)
}
