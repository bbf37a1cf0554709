package usecase

import (
	"context"
	"fmt"

	"melanoma-screening-api/internal/converter"
	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
	"melanoma-screening-api/internal/domain/repository"
	"melanoma-screening-api/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, cedula int64) (*dto.PatientResponse, error)
	GetPatients(ctx context.Context, offset, limit int) ([]dto.PatientResponse, int64, error)
	GetPatientsByDoctor(ctx context.Context, doctorEmail string, offset, limit int) ([]dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, cedula int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, cedula int64) error
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	imageRepo   repository.ImageRepository
	fileStore   *storage.FileStore
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	imageRepo repository.ImageRepository,
	fileStore *storage.FileStore,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		imageRepo:   imageRepo,
		fileStore:   fileStore,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// The doctor reference is checked in application code, not left to
	// the foreign-key constraint alone.
	doctor, err := u.doctorRepo.FindByEmail(ctx, tx, req.DoctorEmail)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient := &entity.Patient{
		Cedula:      req.Cedula,
		Name:        req.Name,
		DoctorEmail: req.DoctorEmail,
	}

	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCedulaAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, cedula int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByCedula(ctx, u.db, cedula)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatients(ctx context.Context, offset, limit int) ([]dto.PatientResponse, int64, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, 0, err
	}

	total, err := u.patientRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, 0, err
	}

	return converter.PatientsToResponses(patients), total, nil
}

func (u *patientUsecase) GetPatientsByDoctor(ctx context.Context, doctorEmail string, offset, limit int) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindAllByDoctor(ctx, u.db, doctorEmail, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list patients by doctor: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, cedula int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByCedula(ctx, tx, cedula)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Reassigning the patient to another doctor requires that doctor
	// to exist before anything is written.
	if req.DoctorEmail != nil {
		doctor, err := u.doctorRepo.FindByEmail(ctx, tx, *req.DoctorEmail)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		patient.DoctorEmail = *req.DoctorEmail
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}

	if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// DeletePatient removes the patient's file subtree, all image rows
// (prediction rows go with them through the storage-level cascade) and
// finally the patient row, in one transaction.
func (u *patientUsecase) DeletePatient(ctx context.Context, cedula int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByCedula(ctx, tx, cedula)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if err := u.fileStore.RemoveAll(u.fileStore.PatientDir(cedula)); err != nil {
		u.log.Warnf("Failed to remove patient directory: %+v", err)
		return fmt.Errorf("deleting patient %d: %w", cedula, err)
	}

	if err := u.imageRepo.DeleteByPatient(ctx, tx, cedula); err != nil {
		u.log.Warnf("Failed to delete patient images: %+v", err)
		return fmt.Errorf("deleting patient %d: %w", cedula, err)
	}

	if err := u.patientRepo.Delete(ctx, tx, cedula); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return fmt.Errorf("deleting patient %d: %w", cedula, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return fmt.Errorf("deleting patient %d: %w", cedula, err)
	}

	return nil
}
