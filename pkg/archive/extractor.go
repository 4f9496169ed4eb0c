package archive

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/unbox/pkg/types"
)

// extractor implements types.Extractor with the built-in decoders.
type extractor struct{}

// NewExtractor returns the built-in archive extraction capabilities.
func NewExtractor() types.Extractor {
	return &extractor{}
}

// securePath resolves an archive entry name inside dest, rejecting entries
// that would escape it (path traversal via ../ or absolute names).
func securePath(dest, name string) (string, error) {
	cleaned := filepath.Join(dest, filepath.FromSlash(name))
	if cleaned != filepath.Clean(dest) && !strings.HasPrefix(cleaned, filepath.Clean(dest)+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes destination %q", name, dest)
	}
	return cleaned, nil
}
