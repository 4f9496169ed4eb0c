package archive

import "strings"

// NormalizeTarFlags parses a user-supplied tar option string and returns a
// flag list guaranteed to request extraction and to name the archive file.
//
// The original flags are preserved. A leading dashless token is treated as
// an old-style option bundle ("xzf", "J") and expanded into single-letter
// flags. Any file-specifier flag in the input is stripped, because the
// archive path is supplied by the caller: "-f" is always emitted as the
// final flag so the archive path can directly follow it. An extract flag
// ("-x"/"--extract") is prepended when absent.
//
// Working on a parsed flag set instead of prefixing the raw string avoids
// double-prefixing when an "x" or "f" letter happens to appear inside an
// unrelated flag or argument.
func NormalizeTarFlags(options string) []string {
	var flags []string
	hasExtract := false

	appendShort := func(c rune) {
		switch c {
		case 'x':
			hasExtract = true
			flags = append(flags, "-x")
		case 'f':
			// stripped; re-emitted as the final flag
		default:
			flags = append(flags, "-"+string(c))
		}
	}

	for i, token := range strings.Fields(options) {
		switch {
		case strings.HasPrefix(token, "--"):
			switch {
			case token == "--extract" || token == "--get":
				hasExtract = true
				flags = append(flags, token)
			case token == "--file" || strings.HasPrefix(token, "--file="):
				// stripped; the caller names the archive
			default:
				flags = append(flags, token)
			}
		case strings.HasPrefix(token, "-") && len(token) > 1:
			for _, c := range token[1:] {
				appendShort(c)
			}
		case i == 0:
			// old-style bundle: "tar xzf ..." without dashes
			for _, c := range token {
				appendShort(c)
			}
		default:
			// bare argument to a preceding flag (e.g. "-C dir")
			flags = append(flags, token)
		}
	}

	if !hasExtract {
		flags = append([]string{"-x"}, flags...)
	}
	return append(flags, "-f")
}
