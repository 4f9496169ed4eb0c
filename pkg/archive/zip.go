package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/logging"
)

// Unzip extracts a zip archive into dest and returns the entry names in
// archive order.
func (e *extractor) Unzip(archive, dest string) ([]string, error) {
	logger := logging.GetLogger("archive.zip")

	reader, err := zip.OpenReader(archive)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtract, "failed to open zip archive %s", archive)
	}
	defer func() { _ = reader.Close() }()

	var names []string
	for _, entry := range reader.File {
		names = append(names, entry.Name)

		path, err := securePath(dest, entry.Name)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrExtract, "refusing to extract unsafe zip entry")
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(path, entry.Mode().Perm()|0700); err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
			}
			continue
		}

		if err := writeZipEntry(entry, path); err != nil {
			return nil, err
		}
	}

	logger.Debug().Str("archive", archive).Str("dest", dest).Int("entries", len(names)).Msg("zip extracted")
	return names, nil
}

func writeZipEntry(entry *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", path)
	}

	src, err := entry.Open()
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtract, "failed to open zip entry %s", entry.Name)
	}
	defer func() { _ = src.Close() }()

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create %s", path)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrapf(err, errors.ErrExtract, "failed to write %s", path)
	}
	return nil
}
