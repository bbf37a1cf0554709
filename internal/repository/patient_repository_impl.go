package repository

import (
	"context"
	"errors"

	"melanoma-screening-api/internal/domain/entity"
	domainRepo "melanoma-screening-api/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByCedula(ctx context.Context, db *gorm.DB, cedula int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("cedula = ?", cedula).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).Offset(offset).Limit(limit).Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindAllByDoctor(ctx context.Context, db *gorm.DB, doctorEmail string, offset, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).Where("doctor_email = ?", doctorEmail).Offset(offset).Limit(limit).Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).Count(&count).Error
	return count, err
}

func (r *patientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, cedula int64) error {
	return db.WithContext(ctx).Where("cedula = ?", cedula).Delete(&entity.Patient{}).Error
}
