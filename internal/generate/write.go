package generate

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".doxmd-*.tmp")
	if err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "creating temporary file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "writing temporary file")
	}

	if err := tempFile.Close(); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "closing temporary file")
	}

	if err := os.Rename(tempPath, path); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("from", tempPath).
			With("to", path).
			Wrapf(err, "replacing output file")
	}

	return nil
}
