package storage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePatientDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "images")

	dir, err := store.EnsurePatientDir(123456)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("images", "patient_123456"), dir)

	exists, err := store.PatientDirExists(123456)
	require.NoError(t, err)
	assert.True(t, exists)

	// Idempotent: a second call must not fail
	again, err := store.EnsurePatientDir(123456)
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestPatientDirExistsMissing(t *testing.T) {
	store := NewFileStore(afero.NewMemMapFs(), "images")

	exists, err := store.PatientDirExists(999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriteAndOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "images")

	dir, err := store.EnsurePatientDir(42)
	require.NoError(t, err)

	content := []byte("fake png bytes")
	path, err := store.Write(dir, "image_abc.png", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "image_abc.png"), path)

	stored, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestWriteFailsOnReadOnlyFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "images")
	dir, err := store.EnsurePatientDir(42)
	require.NoError(t, err)

	roStore := NewFileStore(afero.NewReadOnlyFs(fs), "images")
	_, err = roStore.Write(dir, "image_abc.png", bytes.NewReader([]byte("data")))
	assert.Error(t, err)
}

func TestRemoveMissingFileIsNoop(t *testing.T) {
	store := NewFileStore(afero.NewMemMapFs(), "images")

	err := store.Remove(filepath.Join("images", "patient_1", "image_gone.png"))
	assert.NoError(t, err)
}

func TestRemoveAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "images")

	dir, err := store.EnsurePatientDir(7)
	require.NoError(t, err)
	_, err = store.Write(dir, "image_a.png", bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	_, err = store.Write(dir, "prediction_b.png", bytes.NewReader([]byte("b")))
	require.NoError(t, err)

	require.NoError(t, store.RemoveAll(dir))

	exists, err := store.PatientDirExists(7)
	require.NoError(t, err)
	assert.False(t, exists)

	// Removing an already absent subtree is a no-op
	assert.NoError(t, store.RemoveAll(dir))
}
