package repository

import (
	"context"
	"errors"

	"melanoma-screening-api/internal/domain/entity"
	domainRepo "melanoma-screening-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type imageRepository struct{}

func NewImageRepository() domainRepo.ImageRepository {
	return &imageRepository{}
}

func (r *imageRepository) Create(ctx context.Context, db *gorm.DB, image *entity.Image) error {
	return db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Image, error) {
	var image entity.Image
	err := db.WithContext(ctx).Where("id = ?", id).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Image, error) {
	var images []entity.Image
	err := db.WithContext(ctx).Offset(offset).Limit(limit).Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) FindAllByPatient(ctx context.Context, db *gorm.DB, cedula int64) ([]entity.Image, error) {
	var images []entity.Image
	err := db.WithContext(ctx).Where("patient_cedula = ?", cedula).Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Image{}).Count(&count).Error
	return count, err
}

func (r *imageRepository) Update(ctx context.Context, db *gorm.DB, image *entity.Image) error {
	return db.WithContext(ctx).Save(image).Error
}

func (r *imageRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Image{}).Error
}

// DeleteByPatient removes every image row of a patient in one
// statement. Prediction rows go with them through the ON DELETE
// CASCADE constraint on predictions.image_id.
func (r *imageRepository) DeleteByPatient(ctx context.Context, db *gorm.DB, cedula int64) error {
	return db.WithContext(ctx).Where("patient_cedula = ?", cedula).Delete(&entity.Image{}).Error
}
