package repository

import (
	"context"

	"melanoma-screening-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImageRepository interface {
	Create(ctx context.Context, db *gorm.DB, image *entity.Image) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Image, error)
	FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Image, error)
	FindAllByPatient(ctx context.Context, db *gorm.DB, cedula int64) ([]entity.Image, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, image *entity.Image) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	DeleteByPatient(ctx context.Context, db *gorm.DB, cedula int64) error
}
