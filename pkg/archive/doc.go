// Package archive provides the built-in extraction capabilities the
// reconciler dispatches to: zip and rar via library decoders, tar via the
// standard library with transparent decompression (gzip, bzip2, xz, zstd),
// and the flag normalizer for the external-tar escape hatch.
//
// Each extractor returns the archive's entry names in archive order; the
// reconciler judges success purely by whether that list is empty.
package archive
