package usecase

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrPredictionNotFound  = errors.New("prediction not found")
	ErrEmailAlreadyExists  = errors.New("doctor with this email already exists")
	ErrCedulaAlreadyExists = errors.New("patient with this cedula already exists")
	ErrDoctorHasPatients   = errors.New("doctor still has patients assigned")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenRevoked        = errors.New("token has been revoked")

	// ErrPatientDirMissing signals that an image row exists but its
	// patient directory is gone from storage. The mismatch is reported
	// rather than repaired so a prior partial failure stays visible.
	ErrPatientDirMissing = errors.New("patient directory not found in storage")
)

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		// PostgreSQL error code 23505 = unique_violation
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		// PostgreSQL error code 23503 = foreign_key_violation
		return true
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
