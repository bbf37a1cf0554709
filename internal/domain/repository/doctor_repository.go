package repository

import (
	"context"

	"melanoma-screening-api/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Doctor, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	Delete(ctx context.Context, db *gorm.DB, email string) error
}
