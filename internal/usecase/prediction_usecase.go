package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"melanoma-screening-api/internal/converter"
	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
	"melanoma-screening-api/internal/domain/repository"
	"melanoma-screening-api/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PredictionUsecase interface {
	CreatePrediction(ctx context.Context, req *dto.CreatePredictionRequest) (*dto.PredictionResponse, error)
	GetPrediction(ctx context.Context, id uuid.UUID) (*dto.PredictionResponse, error)
	GetPredictions(ctx context.Context, offset, limit int) ([]dto.PredictionResponse, int64, error)
	GetPredictionsByImage(ctx context.Context, imageID uuid.UUID) ([]dto.PredictionResponse, error)
	DeletePrediction(ctx context.Context, id uuid.UUID) error
	DeletePredictionsByImage(ctx context.Context, imageID uuid.UUID) error
}

type predictionUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	imageRepo      repository.ImageRepository
	predictionRepo repository.PredictionRepository
	fileStore      *storage.FileStore
}

func NewPredictionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	imageRepo repository.ImageRepository,
	predictionRepo repository.PredictionRepository,
	fileStore *storage.FileStore,
) PredictionUsecase {
	return &predictionUsecase{
		db:             db,
		log:            log,
		imageRepo:      imageRepo,
		predictionRepo: predictionRepo,
		fileStore:      fileStore,
	}
}

// CreatePrediction saves an uploaded mask next to its image's files
// and records it. The owning image must exist before anything touches
// the filesystem, and the patient directory must already be there: a
// missing directory means some earlier operation half-failed, and that
// should surface instead of being papered over with a fresh mkdir.
func (u *predictionUsecase) CreatePrediction(ctx context.Context, req *dto.CreatePredictionRequest) (*dto.PredictionResponse, error) {
	image, err := u.imageRepo.FindByID(ctx, u.db, req.ImageID)
	if err != nil {
		u.log.Warnf("Failed to find image: %+v", err)
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}

	dirExists, err := u.fileStore.PatientDirExists(image.PatientCedula)
	if err != nil {
		u.log.Warnf("Failed to check patient directory: %+v", err)
		return nil, fmt.Errorf("checking patient directory: %w", err)
	}
	if !dirExists {
		return nil, ErrPatientDirMissing
	}

	// The id is generated before any I/O so the file name and the row
	// always agree, which lets the compensation below target the exact
	// file that was written.
	predictionID := uuid.New()
	fileName := fmt.Sprintf("prediction_%s%s", predictionID, filepath.Ext(req.Filename))

	filePath, err := u.fileStore.Write(u.fileStore.PatientDir(image.PatientCedula), fileName, req.File)
	if err != nil {
		u.log.Warnf("Failed to save prediction file: %+v", err)
		return nil, fmt.Errorf("saving prediction file: %w", err)
	}

	prediction := &entity.Prediction{
		ID:        predictionID,
		FilePath:  filePath,
		Timestamp: time.Now(),
		ImageID:   req.ImageID,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.predictionRepo.Create(ctx, tx, prediction); err != nil {
		u.compensateFile(filePath)
		u.log.Warnf("Failed to create prediction record: %+v", err)
		return nil, fmt.Errorf("saving prediction record: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.compensateFile(filePath)
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, fmt.Errorf("saving prediction record: %w", err)
	}

	return converter.PredictionToResponse(prediction), nil
}

// compensateFile removes a file that was written for a row that never
// committed, so no orphan survives the failure.
func (u *predictionUsecase) compensateFile(filePath string) {
	if err := u.fileStore.Remove(filePath); err != nil {
		u.log.Errorf("Failed to remove orphan file %s: %+v", filePath, err)
	}
}

func (u *predictionUsecase) GetPrediction(ctx context.Context, id uuid.UUID) (*dto.PredictionResponse, error) {
	prediction, err := u.predictionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find prediction: %+v", err)
		return nil, err
	}
	if prediction == nil {
		return nil, ErrPredictionNotFound
	}

	return converter.PredictionToResponse(prediction), nil
}

func (u *predictionUsecase) GetPredictions(ctx context.Context, offset, limit int) ([]dto.PredictionResponse, int64, error) {
	predictions, err := u.predictionRepo.FindAll(ctx, u.db, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list predictions: %+v", err)
		return nil, 0, err
	}

	total, err := u.predictionRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count predictions: %+v", err)
		return nil, 0, err
	}

	return converter.PredictionsToResponses(predictions), total, nil
}

func (u *predictionUsecase) GetPredictionsByImage(ctx context.Context, imageID uuid.UUID) ([]dto.PredictionResponse, error) {
	predictions, err := u.predictionRepo.FindAllByImage(ctx, u.db, imageID)
	if err != nil {
		u.log.Warnf("Failed to list predictions by image: %+v", err)
		return nil, err
	}

	return converter.PredictionsToResponses(predictions), nil
}

// DeletePrediction removes the mask file and then the row, committed
// together. Deleting a prediction that no longer exists is a no-op so
// a retried cascade stays safe.
func (u *predictionUsecase) DeletePrediction(ctx context.Context, id uuid.UUID) error {
	prediction, err := u.predictionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find prediction: %+v", err)
		return err
	}
	if prediction == nil {
		return nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.fileStore.Remove(prediction.FilePath); err != nil {
		u.log.Warnf("Failed to remove prediction file: %+v", err)
		return fmt.Errorf("deleting prediction %s: %w", id, err)
	}

	if err := u.predictionRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete prediction record: %+v", err)
		return fmt.Errorf("deleting prediction %s: %w", id, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return fmt.Errorf("deleting prediction %s: %w", id, err)
	}

	return nil
}

// DeletePredictionsByImage deletes every prediction of an image one at
// a time, each with its own commit. A failure partway leaves a clean
// boundary: earlier predictions are fully gone, later ones untouched,
// and the whole operation can simply be retried.
func (u *predictionUsecase) DeletePredictionsByImage(ctx context.Context, imageID uuid.UUID) error {
	predictions, err := u.predictionRepo.FindAllByImage(ctx, u.db, imageID)
	if err != nil {
		u.log.Warnf("Failed to list predictions by image: %+v", err)
		return err
	}

	for i := range predictions {
		if err := u.DeletePrediction(ctx, predictions[i].ID); err != nil {
			return err
		}
	}

	return nil
}
