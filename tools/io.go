package tools

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

func CreateDirectoryIfDoesNotExist(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return err
		}
	}
	return nil
}

// Permissions of every file written by WriteFileAtomically and ReplaceFileAtomically
const OutputFileMode os.FileMode = 0644

// Writes a file through a temporary sibling which is renamed into place only when
// write succeeds. On failure the destination is left untouched.
func WriteFileAtomically(filePath string, write func(w io.Writer) error) error {
	return ReplaceFileAtomically(filePath, func(tmpPath string) error {
		file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_TRUNC, OutputFileMode)
		if err != nil {
			return errors.Wrapf(err, "cannot open %s", tmpPath)
		}
		buf := bufio.NewWriter(file)
		if err := write(buf); err != nil {
			_ = file.Close()
			return err
		}
		if err := buf.Flush(); err != nil {
			_ = file.Close()
			return errors.Wrapf(err, "writing %s", tmpPath)
		}
		if err := file.Close(); err != nil {
			return errors.Wrapf(err, "closing %s", tmpPath)
		}
		return nil
	})
}

// Same as WriteFileAtomically for writers that need a path rather than a stream.
// write receives the path of an empty temporary file in the destination folder.
func ReplaceFileAtomically(filePath string, write func(tmpPath string) error) (err error) {
	dir := filepath.Dir(filePath)
	if err := CreateDirectoryIfDoesNotExist(dir); err != nil {
		return errors.Wrapf(err, "cannot create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "cannot create temporary file in %s", dir)
	}
	tmpPath := tmp.Name()
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "closing %s", tmpPath)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err = write(tmpPath); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, OutputFileMode); err != nil {
		return errors.Wrapf(err, "setting permissions of %s", tmpPath)
	}
	if err = os.Rename(tmpPath, filePath); err != nil {
		return errors.Wrapf(err, "renaming %s to %s", tmpPath, filePath)
	}
	return nil
}
