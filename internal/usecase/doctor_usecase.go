package usecase

import (
	"context"

	"melanoma-screening-api/internal/converter"
	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
	"melanoma-screening-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, email string) (*dto.DoctorResponse, error)
	GetDoctors(ctx context.Context, offset, limit int) ([]dto.DoctorResponse, int64, error)
	UpdateDoctor(ctx context.Context, email string, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, email string) error
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
	}
}

func (u *doctorUsecase) Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashedPassword),
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, email string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctors(ctx context.Context, offset, limit int) ([]dto.DoctorResponse, int64, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.db, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, 0, err
	}

	total, err := u.doctorRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, 0, err
	}

	return converter.DoctorsToResponses(doctors), total, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, email string, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Only supplied fields change
	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		doctor.Password = string(hashedPassword)
	}

	if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// DeleteDoctor removes a doctor record. Patients keep a plain
// reference to their doctor, so deleting a doctor who still has
// patients fails instead of cascading into them.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, email string) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if err := u.doctorRepo.Delete(ctx, tx, email); err != nil {
		if isForeignKeyError(err) {
			return ErrDoctorHasPatients
		}
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		if isForeignKeyError(err) {
			return ErrDoctorHasPatients
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
