package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps uploaded image and prediction files on a filesystem
// rooted at baseDir, one subdirectory per patient:
//
//	<baseDir>/patient_<cedula>/image_<uuid>.<ext>
//	<baseDir>/patient_<cedula>/prediction_<uuid>.<ext>
//
// The filesystem is an afero.Fs so tests can run against an in-memory
// fs and inject write failures.
type FileStore struct {
	fs      afero.Fs
	baseDir string
}

func NewFileStore(fs afero.Fs, baseDir string) *FileStore {
	return &FileStore{
		fs:      fs,
		baseDir: baseDir,
	}
}

// PatientDir resolves the directory for a patient's files without
// touching the filesystem.
func (s *FileStore) PatientDir(cedula int64) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("patient_%d", cedula))
}

// EnsurePatientDir creates the patient directory if it does not exist
// yet and returns its path. Safe to call concurrently: MkdirAll is
// idempotent.
func (s *FileStore) EnsurePatientDir(cedula int64) (string, error) {
	dir := s.PatientDir(cedula)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating patient directory %s: %w", dir, err)
	}
	return dir, nil
}

// PatientDirExists reports whether the patient directory is present.
func (s *FileStore) PatientDirExists(cedula int64) (bool, error) {
	return afero.DirExists(s.fs, s.PatientDir(cedula))
}

// Write saves the uploaded bytes as <dir>/<fileName> and returns the
// final path. Callers derive fileName from a freshly generated uuid,
// so each call targets a distinct file.
func (s *FileStore) Write(dir, fileName string, src io.Reader) (string, error) {
	path := filepath.Join(dir, fileName)

	f, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file %s: %w", path, err)
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file %s: %w", path, err)
	}

	return path, nil
}

// Open opens a stored file for reading.
func (s *FileStore) Open(path string) (afero.File, error) {
	return s.fs.Open(path)
}

// Exists reports whether a stored file is present.
func (s *FileStore) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// Remove deletes a single file. A missing file is not an error, so
// retrying a partially completed delete stays safe.
func (s *FileStore) Remove(path string) error {
	err := s.fs.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file %s: %w", path, err)
	}
	return nil
}

// RemoveAll deletes a directory and everything under it. A missing
// directory is a no-op.
func (s *FileStore) RemoveAll(dir string) error {
	if err := s.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing directory %s: %w", dir, err)
	}
	return nil
}
