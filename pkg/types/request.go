package types

import (
	"fmt"
	"strings"
)

// Format identifies the archive format of an extraction request.
type Format string

const (
	FormatTar Format = "tar"
	FormatZip Format = "zip"
	FormatRar Format = "rar"
)

// ValidFormats returns the supported formats in their canonical order.
// Used when building the unsupported-format error message.
func ValidFormats() []Format {
	return []Format{FormatTar, FormatZip, FormatRar}
}

// ParseFormat validates a format string against the supported set.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTar, FormatZip, FormatRar:
		return Format(s), nil
	}
	return "", fmt.Errorf("%q is not supported, valids: %s", s, FormatList())
}

// FormatList returns the valid formats as a comma-separated string.
func FormatList() string {
	valid := ValidFormats()
	names := make([]string, len(valid))
	for i, f := range valid {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

// ExtractionRequest describes a desired filesystem outcome: the contents of
// an archive exist, extracted, under Target. It is immutable for the
// duration of one reconciliation call.
type ExtractionRequest struct {
	// Target is the directory the archive must be extracted into.
	Target string

	// Source locates the archive. It is opaque to the reconciler beyond
	// being handed to the fetcher (local path, file://, http(s)://, ...).
	Source string

	// Format is one of tar, zip, rar.
	Format Format

	// TarOptions, when set, routes tar extraction through the external tar
	// executable with these flags instead of the built-in decoder. Only
	// meaningful for FormatTar.
	TarOptions string

	// SourceHash is an optional integrity descriptor (e.g. "md5=499ae...")
	// passed through to the fetcher.
	SourceHash string

	// IfMissing is the path whose existence proves a previous extraction
	// completed. Some archives extract themselves into a subfolder; point
	// this at that subfolder. Defaults to Target when empty.
	IfMissing string

	// Keep retains the downloaded archive in the cache after a successful
	// extraction instead of deleting it.
	Keep bool
}

// Marker returns the presence marker for the request, falling back to the
// target when IfMissing is unset.
func (r ExtractionRequest) Marker() string {
	if r.IfMissing != "" {
		return r.IfMissing
	}
	return r.Target
}
