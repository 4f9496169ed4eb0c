package state

import (
	"path/filepath"
	"strings"
)

// CachePath computes the deterministic cache location for a request's
// archive. The path is keyed by the presence marker (with path separators
// flattened so it stays a single file name) and suffixed with the format,
// which is what lets a downloaded-but-not-yet-extracted archive survive
// across repeated invocations.
func CachePath(cacheRoot, marker string, format string) string {
	flattened := strings.ReplaceAll(marker, "/", "_")
	if filepath.Separator != '/' {
		flattened = strings.ReplaceAll(flattened, string(filepath.Separator), "_")
	}
	return filepath.Join(cacheRoot, flattened+"."+format)
}
