package repository

import (
	"context"

	"melanoma-screening-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByCedula(ctx context.Context, db *gorm.DB, cedula int64) (*entity.Patient, error)
	FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Patient, error)
	FindAllByDoctor(ctx context.Context, db *gorm.DB, doctorEmail string, offset, limit int) ([]entity.Patient, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	Delete(ctx context.Context, db *gorm.DB, cedula int64) error
}
