package archive

import (
	"io"
	"os"
	"path/filepath"

	"github.com/nwaples/rardecode"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/logging"
)

// Unrar extracts a rar archive into dest and returns the entry names in
// archive order.
func (e *extractor) Unrar(archive, dest string) ([]string, error) {
	logger := logging.GetLogger("archive.rar")

	reader, err := rardecode.OpenReader(archive, "")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtract, "failed to open rar archive %s", archive)
	}
	defer func() { _ = reader.Close() }()

	var names []string
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrExtract, "failed to read rar archive %s", archive)
		}

		names = append(names, header.Name)

		path, err := securePath(dest, header.Name)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrExtract, "refusing to extract unsafe rar entry")
		}

		if header.IsDir {
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
			}
			continue
		}

		if err := writeRarEntry(reader, path, header.Mode()); err != nil {
			return nil, err
		}
	}

	logger.Debug().Str("archive", archive).Str("dest", dest).Int("entries", len(names)).Msg("rar extracted")
	return names, nil
}

func writeRarEntry(src io.Reader, path string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", path)
	}

	perm := mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create %s", path)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrapf(err, errors.ErrExtract, "failed to write %s", path)
	}
	return nil
}
