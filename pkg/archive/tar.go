package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/logging"
)

// Compression magic numbers, checked against the first bytes of the file.
var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte{'B', 'Z', 'h'}
	magicXz    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Untar extracts a tar archive into dest using the built-in decoder and
// returns the entry names in archive order. Gzip, bzip2, xz and zstd
// compression are detected from the file's magic bytes.
func (e *extractor) Untar(archive, dest string) ([]string, error) {
	logger := logging.GetLogger("archive.tar")

	file, err := os.Open(archive)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open tar archive %s", archive)
	}
	defer func() { _ = file.Close() }()

	decompressed, err := decompress(file)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtract, "failed to decompress %s", archive)
	}

	reader := tar.NewReader(decompressed)
	var names []string
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrExtract, "failed to read tar archive %s", archive)
		}

		names = append(names, header.Name)

		if err := extractTarEntry(reader, header, dest); err != nil {
			return nil, err
		}
	}

	logger.Debug().Str("archive", archive).Str("dest", dest).Int("entries", len(names)).Msg("tar extracted")
	return names, nil
}

func extractTarEntry(reader *tar.Reader, header *tar.Header, dest string) error {
	path, err := securePath(dest, header.Name)
	if err != nil {
		return errors.Wrap(err, errors.ErrExtract, "refusing to extract unsafe tar entry")
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(path, os.FileMode(header.Mode).Perm()|0700); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
		}

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", path)
		}
		perm := os.FileMode(header.Mode).Perm()
		if perm == 0 {
			perm = 0644
		}
		dst, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileCreate, "failed to create %s", path)
		}
		if _, err := io.Copy(dst, reader); err != nil {
			_ = dst.Close()
			return errors.Wrapf(err, errors.ErrExtract, "failed to write %s", path)
		}
		if err := dst.Close(); err != nil {
			return errors.Wrapf(err, errors.ErrFileCreate, "failed to close %s", path)
		}

	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", path)
		}
		if err := os.Symlink(header.Linkname, path); err != nil && !os.IsExist(err) {
			return errors.Wrapf(err, errors.ErrExtract, "failed to create symlink %s", path)
		}

	default:
		// Hard links, devices etc. are recorded in the entry list but not
		// materialized.
	}

	return nil
}

// decompress wraps r in the decompressor matching its magic bytes, or
// returns it untouched for a plain tar stream.
func decompress(r io.Reader) (io.Reader, error) {
	buffered := bufio.NewReader(r)
	head, err := buffered.Peek(6)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, magicGzip):
		return gzip.NewReader(buffered)
	case bytes.HasPrefix(head, magicBzip2):
		return bzip2.NewReader(buffered), nil
	case bytes.HasPrefix(head, magicXz):
		return xz.NewReader(buffered)
	case bytes.HasPrefix(head, magicZstd):
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil
	}
	return buffered, nil
}
