package repository

import (
	"context"

	"melanoma-screening-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PredictionRepository interface {
	Create(ctx context.Context, db *gorm.DB, prediction *entity.Prediction) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Prediction, error)
	FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Prediction, error)
	FindAllByImage(ctx context.Context, db *gorm.DB, imageID uuid.UUID) ([]entity.Prediction, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
