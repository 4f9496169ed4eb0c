// Package filesystem provides types.FS implementations.
//
// NewOS returns the real filesystem used in production. NewAferoFS wraps
// any afero.Fs, which lets tests run against an in-memory filesystem
// without touching disk.
package filesystem
