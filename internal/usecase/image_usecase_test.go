package usecase

import (
	"bytes"
	"context"
	"testing"

	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
	"melanoma-screening-api/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageUsecases(t *testing.T) (ImageUsecase, PredictionUsecase, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	predictionUC := NewPredictionUsecase(env.db, env.log, env.imageRepo, env.predictionRepo, env.fileStore)
	imageUC := NewImageUsecase(env.db, env.log, env.patientRepo, env.imageRepo, predictionUC, env.fileStore)
	return imageUC, predictionUC, env
}

func seedImageOwner(t *testing.T, env *testEnv) {
	t.Helper()
	seedDoctor(t, env.db, "ana@clinic.test")
	seedPatient(t, env.db, 1001, "ana@clinic.test")
}

func TestCreateImageRoundTrip(t *testing.T) {
	imageUC, _, env := newImageUsecases(t)
	ctx := context.Background()
	seedImageOwner(t, env)

	content := []byte("fake png pixels")
	created, err := imageUC.CreateImage(ctx, &dto.CreateImageRequest{
		Name:          "left arm lesion",
		PatientCedula: 1001,
		Filename:      "lesion.png",
		File:          bytes.NewReader(content),
	})
	require.NoError(t, err)

	fetched, err := imageUC.GetImage(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.FilePath, fetched.FilePath)
	assert.Equal(t, "left arm lesion", fetched.Name)

	// The committed row points at a file holding exactly the uploaded bytes
	stored, err := afero.ReadFile(env.fs, fetched.FilePath)
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestCreateImagePatientMissing(t *testing.T) {
	imageUC, _, env := newImageUsecases(t)

	_, err := imageUC.CreateImage(context.Background(), &dto.CreateImageRequest{
		PatientCedula: 9999,
		Filename:      "lesion.png",
		File:          bytes.NewReader([]byte("pixels")),
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	// The filesystem was never touched
	exists, err := env.fileStore.PatientDirExists(9999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateImageFileWriteFailureLeavesNoRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedImageOwner(t, env)

	// A read-only filesystem makes every write fail
	roStore := storage.NewFileStore(afero.NewReadOnlyFs(env.fs), "images")
	predictionUC := NewPredictionUsecase(env.db, env.log, env.imageRepo, env.predictionRepo, roStore)
	imageUC := NewImageUsecase(env.db, env.log, env.patientRepo, env.imageRepo, predictionUC, roStore)

	_, err := imageUC.CreateImage(ctx, &dto.CreateImageRequest{
		PatientCedula: 1001,
		Filename:      "lesion.png",
		File:          bytes.NewReader([]byte("pixels")),
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, env.db.Model(&entity.Image{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateImageInsertFailureCompensatesFile(t *testing.T) {
	imageUC, _, env := newImageUsecases(t)
	ctx := context.Background()
	seedImageOwner(t, env)

	// Sabotage the insert: the file write will succeed, the row cannot
	require.NoError(t, env.db.Migrator().DropTable(&entity.Image{}))

	_, err := imageUC.CreateImage(ctx, &dto.CreateImageRequest{
		PatientCedula: 1001,
		Filename:      "lesion.png",
		File:          bytes.NewReader([]byte("pixels")),
	})
	require.Error(t, err)

	// The just-written file was deleted again: no orphan remains
	dir := env.fileStore.PatientDir(1001)
	entries, readErr := afero.ReadDir(env.fs, dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestUpdateImagePartial(t *testing.T) {
	imageUC, _, env := newImageUsecases(t)
	ctx := context.Background()
	seedImageOwner(t, env)

	created, err := imageUC.CreateImage(ctx, &dto.CreateImageRequest{
		Name:          "original",
		PatientCedula: 1001,
		Filename:      "lesion.png",
		File:          bytes.NewReader([]byte("pixels")),
	})
	require.NoError(t, err)

	newName := "renamed"
	updated, err := imageUC.UpdateImage(ctx, created.ID, &dto.UpdateImageRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, created.FilePath, updated.FilePath)
}

func TestDeleteImageCascadesPredictions(t *testing.T) {
	imageUC, predictionUC, env := newImageUsecases(t)
	ctx := context.Background()
	seedImageOwner(t, env)

	image, err := imageUC.CreateImage(ctx, &dto.CreateImageRequest{
		PatientCedula: 1001,
		Filename:      "lesion.png",
		File:          bytes.NewReader([]byte("pixels")),
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := predictionUC.CreatePrediction(ctx, &dto.CreatePredictionRequest{
			ImageID:  image.ID,
			Filename: "mask.png",
			File:     bytes.NewReader([]byte("mask")),
		})
		require.NoError(t, err)
	}

	require.NoError(t, imageUC.DeleteImage(ctx, image.ID))

	var predictionCount int64
	require.NoError(t, env.db.Model(&entity.Prediction{}).Where("image_id = ?", image.ID).Count(&predictionCount).Error)
	assert.Zero(t, predictionCount)

	var imageCount int64
	require.NoError(t, env.db.Model(&entity.Image{}).Where("id = ?", image.ID).Count(&imageCount).Error)
	assert.Zero(t, imageCount)

	// Every backing file is gone too
	entries, err := afero.ReadDir(env.fs, env.fileStore.PatientDir(1001))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteImageAbsentIsNoop(t *testing.T) {
	imageUC, _, _ := newImageUsecases(t)

	assert.NoError(t, imageUC.DeleteImage(context.Background(), uuid.New()))
}

func TestDeleteImagesByPatient(t *testing.T) {
	imageUC, predictionUC, env := newImageUsecases(t)
	ctx := context.Background()
	seedImageOwner(t, env)

	for i := 0; i < 2; i++ {
		image, err := imageUC.CreateImage(ctx, &dto.CreateImageRequest{
			PatientCedula: 1001,
			Filename:      "lesion.png",
			File:          bytes.NewReader([]byte("pixels")),
		})
		require.NoError(t, err)

		_, err = predictionUC.CreatePrediction(ctx, &dto.CreatePredictionRequest{
			ImageID:  image.ID,
			Filename: "mask.png",
			File:     bytes.NewReader([]byte("mask")),
		})
		require.NoError(t, err)
	}

	require.NoError(t, imageUC.DeleteImagesByPatient(ctx, 1001))

	var imageCount int64
	require.NoError(t, env.db.Model(&entity.Image{}).Where("patient_cedula = ?", 1001).Count(&imageCount).Error)
	assert.Zero(t, imageCount)

	// Prediction rows went with their images through the cascade
	var predictionCount int64
	require.NoError(t, env.db.Model(&entity.Prediction{}).Count(&predictionCount).Error)
	assert.Zero(t, predictionCount)

	exists, err := env.fileStore.PatientDirExists(1001)
	require.NoError(t, err)
	assert.False(t, exists)

	// Re-running against an already clean patient is a no-op
	assert.NoError(t, imageUC.DeleteImagesByPatient(ctx, 1001))
}

func TestGetImagesByPatient(t *testing.T) {
	imageUC, _, env := newImageUsecases(t)
	ctx := context.Background()
	seedImageOwner(t, env)

	for i := 0; i < 2; i++ {
		_, err := imageUC.CreateImage(ctx, &dto.CreateImageRequest{
			PatientCedula: 1001,
			Filename:      "lesion.png",
			File:          bytes.NewReader([]byte("pixels")),
		})
		require.NoError(t, err)
	}

	images, err := imageUC.GetImagesByPatient(ctx, 1001)
	require.NoError(t, err)
	assert.Len(t, images, 2)
}

func TestGetImageFile(t *testing.T) {
	imageUC, _, env := newImageUsecases(t)
	ctx := context.Background()
	seedImageOwner(t, env)

	content := []byte("streamable pixels")
	created, err := imageUC.CreateImage(ctx, &dto.CreateImageRequest{
		PatientCedula: 1001,
		Filename:      "lesion.png",
		File:          bytes.NewReader(content),
	})
	require.NoError(t, err)

	f, image, err := imageUC.GetImageFile(ctx, created.ID)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, created.FilePath, image.FilePath)
	streamed, err := afero.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, content, streamed)
}
