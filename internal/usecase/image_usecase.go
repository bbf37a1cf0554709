package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"melanoma-screening-api/internal/converter"
	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
	"melanoma-screening-api/internal/domain/repository"
	"melanoma-screening-api/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

type ImageUsecase interface {
	CreateImage(ctx context.Context, req *dto.CreateImageRequest) (*dto.ImageResponse, error)
	GetImage(ctx context.Context, id uuid.UUID) (*dto.ImageResponse, error)
	GetImageFile(ctx context.Context, id uuid.UUID) (afero.File, *dto.ImageResponse, error)
	GetImages(ctx context.Context, offset, limit int) ([]dto.ImageResponse, int64, error)
	GetImagesByPatient(ctx context.Context, cedula int64) ([]dto.ImageResponse, error)
	UpdateImage(ctx context.Context, id uuid.UUID, req *dto.UpdateImageRequest) (*dto.ImageResponse, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	DeleteImagesByPatient(ctx context.Context, cedula int64) error
}

type imageUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	patientRepo       repository.PatientRepository
	imageRepo         repository.ImageRepository
	predictionUsecase PredictionUsecase
	fileStore         *storage.FileStore
}

func NewImageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	imageRepo repository.ImageRepository,
	predictionUsecase PredictionUsecase,
	fileStore *storage.FileStore,
) ImageUsecase {
	return &imageUsecase{
		db:                db,
		log:               log,
		patientRepo:       patientRepo,
		imageRepo:         imageRepo,
		predictionUsecase: predictionUsecase,
		fileStore:         fileStore,
	}
}

// CreateImage writes the uploaded file into the patient's directory
// and then records it. Order matters: the file goes to disk first, and
// if the row never commits the file is deleted again, so a committed
// row always points at a file that exists.
func (u *imageUsecase) CreateImage(ctx context.Context, req *dto.CreateImageRequest) (*dto.ImageResponse, error) {
	patient, err := u.patientRepo.FindByCedula(ctx, u.db, req.PatientCedula)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	patientDir, err := u.fileStore.EnsurePatientDir(req.PatientCedula)
	if err != nil {
		u.log.Warnf("Failed to create patient directory: %+v", err)
		return nil, fmt.Errorf("saving image file: %w", err)
	}

	// Generated before any I/O so the file name and the row share the
	// same id.
	imageID := uuid.New()
	fileName := fmt.Sprintf("image_%s%s", imageID, filepath.Ext(req.Filename))

	filePath, err := u.fileStore.Write(patientDir, fileName, req.File)
	if err != nil {
		// Nothing was written to the database yet, nothing to undo.
		u.log.Warnf("Failed to save image file: %+v", err)
		return nil, fmt.Errorf("saving image file: %w", err)
	}

	image := &entity.Image{
		ID:            imageID,
		Name:          req.Name,
		FilePath:      filePath,
		PatientCedula: req.PatientCedula,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.imageRepo.Create(ctx, tx, image); err != nil {
		u.compensateFile(filePath)
		u.log.Warnf("Failed to create image record: %+v", err)
		return nil, fmt.Errorf("saving image record: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.compensateFile(filePath)
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, fmt.Errorf("saving image record: %w", err)
	}

	return converter.ImageToResponse(image), nil
}

// compensateFile removes a file that was written for a row that never
// committed, so no orphan survives the failure.
func (u *imageUsecase) compensateFile(filePath string) {
	if err := u.fileStore.Remove(filePath); err != nil {
		u.log.Errorf("Failed to remove orphan file %s: %+v", filePath, err)
	}
}

func (u *imageUsecase) GetImage(ctx context.Context, id uuid.UUID) (*dto.ImageResponse, error) {
	image, err := u.imageRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find image: %+v", err)
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}

	return converter.ImageToResponse(image), nil
}

// GetImageFile opens the stored file for streaming. The caller closes
// the returned file.
func (u *imageUsecase) GetImageFile(ctx context.Context, id uuid.UUID) (afero.File, *dto.ImageResponse, error) {
	image, err := u.imageRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find image: %+v", err)
		return nil, nil, err
	}
	if image == nil {
		return nil, nil, ErrImageNotFound
	}

	f, err := u.fileStore.Open(image.FilePath)
	if err != nil {
		u.log.Warnf("Failed to open image file: %+v", err)
		return nil, nil, fmt.Errorf("opening image file: %w", err)
	}

	return f, converter.ImageToResponse(image), nil
}

func (u *imageUsecase) GetImages(ctx context.Context, offset, limit int) ([]dto.ImageResponse, int64, error) {
	images, err := u.imageRepo.FindAll(ctx, u.db, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list images: %+v", err)
		return nil, 0, err
	}

	total, err := u.imageRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count images: %+v", err)
		return nil, 0, err
	}

	return converter.ImagesToResponses(images), total, nil
}

func (u *imageUsecase) GetImagesByPatient(ctx context.Context, cedula int64) ([]dto.ImageResponse, error) {
	images, err := u.imageRepo.FindAllByPatient(ctx, u.db, cedula)
	if err != nil {
		u.log.Warnf("Failed to list images by patient: %+v", err)
		return nil, err
	}

	return converter.ImagesToResponses(images), nil
}

func (u *imageUsecase) UpdateImage(ctx context.Context, id uuid.UUID, req *dto.UpdateImageRequest) (*dto.ImageResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	image, err := u.imageRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find image: %+v", err)
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}

	// Only supplied fields change
	if req.Name != nil {
		image.Name = *req.Name
	}

	if err := u.imageRepo.Update(ctx, tx, image); err != nil {
		u.log.Warnf("Failed to update image: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ImageToResponse(image), nil
}

// DeleteImage cascades through the image's predictions first, each
// deleted (file, then row) with its own commit, then removes the
// image's file and row together. Deleting an image that no longer
// exists is a no-op.
func (u *imageUsecase) DeleteImage(ctx context.Context, id uuid.UUID) error {
	image, err := u.imageRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find image: %+v", err)
		return err
	}
	if image == nil {
		return nil
	}

	if err := u.predictionUsecase.DeletePredictionsByImage(ctx, id); err != nil {
		u.log.Warnf("Failed to delete image predictions: %+v", err)
		return fmt.Errorf("deleting image %s: %w", id, err)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.fileStore.Remove(image.FilePath); err != nil {
		u.log.Warnf("Failed to remove image file: %+v", err)
		return fmt.Errorf("deleting image %s: %w", id, err)
	}

	if err := u.imageRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete image record: %+v", err)
		return fmt.Errorf("deleting image %s: %w", id, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return fmt.Errorf("deleting image %s: %w", id, err)
	}

	return nil
}

// DeleteImagesByPatient is the bulk path: the patient's whole file
// subtree goes in one RemoveAll, then all image rows in one statement.
// Prediction rows disappear with their images through the ON DELETE
// CASCADE constraint. Re-running on an already clean patient is a
// no-op.
func (u *imageUsecase) DeleteImagesByPatient(ctx context.Context, cedula int64) error {
	if err := u.fileStore.RemoveAll(u.fileStore.PatientDir(cedula)); err != nil {
		u.log.Warnf("Failed to remove patient directory: %+v", err)
		return fmt.Errorf("deleting images of patient %d: %w", cedula, err)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.imageRepo.DeleteByPatient(ctx, tx, cedula); err != nil {
		u.log.Warnf("Failed to delete image records: %+v", err)
		return fmt.Errorf("deleting images of patient %d: %w", cedula, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return fmt.Errorf("deleting images of patient %d: %w", cedula, err)
	}

	return nil
}
