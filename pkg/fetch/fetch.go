// Package fetch downloads archives into the local cache.
//
// It is a thin wrapper over hashicorp/go-getter, which understands local
// paths, file://, http(s):// and friends, and verifies checksums during
// the transfer. The reconciler treats this package purely through the
// types.Fetcher interface; a failed fetch is a Failed Result the
// reconciler passes through verbatim.
package fetch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"

	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/types"
)

// fetcher implements types.Fetcher using go-getter.
type fetcher struct{}

// New returns the production fetcher.
func New() types.Fetcher {
	return &fetcher{}
}

// Fetch downloads req.Source to req.Destination, verifying req.SourceHash
// when set. Retry and timeout policy live in the underlying getter; the
// reconciler never retries.
func (f *fetcher) Fetch(ctx context.Context, req types.FetchRequest) *types.Result {
	logger := logging.GetLogger("fetch")
	logger.Debug().
		Str("source", req.Source).
		Str("destination", req.Destination).
		Str("environment", req.Environment).
		Msg("fetching archive")

	if req.MakeDirs {
		if err := os.MkdirAll(filepath.Dir(req.Destination), 0755); err != nil {
			return types.FailedResult("failed to create cache directory for %s: %v", req.Destination, err)
		}
	}

	src := req.Source
	if spec := ChecksumSpec(req.SourceHash); spec != "" {
		sep := "?"
		if strings.Contains(src, "?") {
			sep = "&"
		}
		src += sep + "checksum=" + spec
	}

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  req.Destination,
		Mode: getter.ClientModeFile,
		Getters: map[string]getter.Getter{
			// Copy instead of symlinking so local sources behave like
			// downloads: the cache file is independently deletable.
			"file":  &getter.FileGetter{Copy: true},
			"http":  &getter.HttpGetter{},
			"https": &getter.HttpGetter{},
		},
	}

	if err := client.Get(); err != nil {
		logger.Debug().Err(err).Str("source", req.Source).Msg("fetch failed")
		return types.FailedResult("failed to download %s: %v", req.Source, err)
	}

	return types.ChangedResult(types.Changes{}, "%s downloaded to %s", req.Source, req.Destination)
}

// ChecksumSpec converts a hash descriptor into go-getter's checksum query
// form. Accepted inputs: "md5=<hex>" (the original system's syntax),
// "md5:<hex>", or a bare hex digest whose type go-getter infers from its
// length. Empty input yields empty output.
func ChecksumSpec(sourceHash string) string {
	hash := strings.TrimSpace(sourceHash)
	if hash == "" {
		return ""
	}
	if i := strings.IndexByte(hash, '='); i >= 0 {
		return hash[:i] + ":" + hash[i+1:]
	}
	return hash
}
