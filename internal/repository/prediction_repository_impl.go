package repository

import (
	"context"
	"errors"

	"melanoma-screening-api/internal/domain/entity"
	domainRepo "melanoma-screening-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type predictionRepository struct{}

func NewPredictionRepository() domainRepo.PredictionRepository {
	return &predictionRepository{}
}

func (r *predictionRepository) Create(ctx context.Context, db *gorm.DB, prediction *entity.Prediction) error {
	return db.WithContext(ctx).Create(prediction).Error
}

func (r *predictionRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Prediction, error) {
	var prediction entity.Prediction
	err := db.WithContext(ctx).Where("id = ?", id).First(&prediction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prediction, nil
}

func (r *predictionRepository) FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Prediction, error) {
	var predictions []entity.Prediction
	err := db.WithContext(ctx).Offset(offset).Limit(limit).Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) FindAllByImage(ctx context.Context, db *gorm.DB, imageID uuid.UUID) ([]entity.Prediction, error) {
	var predictions []entity.Prediction
	err := db.WithContext(ctx).Where("image_id = ?", imageID).Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Prediction{}).Count(&count).Error
	return count, err
}

func (r *predictionRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Prediction{}).Error
}
