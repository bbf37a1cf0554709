package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"melanoma-screening-api/internal/domain/entity"
	domainRepo "melanoma-screening-api/internal/domain/repository"
	"melanoma-screening-api/internal/infrastructure/storage"
	"melanoma-screening-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv bundles everything a usecase needs, wired against a
// throwaway sqlite database and an in-memory file store.
type testEnv struct {
	db             *gorm.DB
	log            *logrus.Logger
	fs             afero.Fs
	fileStore      *storage.FileStore
	doctorRepo     domainRepo.DoctorRepository
	patientRepo    domainRepo.PatientRepository
	imageRepo      domainRepo.ImageRepository
	predictionRepo domainRepo.PredictionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fileStore, fs := newTestFileStore()
	return &testEnv{
		db:             newTestDB(t),
		log:            newTestLogger(),
		fs:             fs,
		fileStore:      fileStore,
		doctorRepo:     repository.NewDoctorRepository(),
		patientRepo:    repository.NewPatientRepository(),
		imageRepo:      repository.NewImageRepository(),
		predictionRepo: repository.NewPredictionRepository(),
	}
}

// newTestDB opens a throwaway sqlite database with foreign keys
// enforced, mirroring the constraints the postgres migrations declare.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Doctor{},
		&entity.Patient{},
		&entity.Image{},
		&entity.Prediction{},
	))

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// newTestFileStore returns a file store over an in-memory filesystem
// plus the raw fs for assertions.
func newTestFileStore() (*storage.FileStore, afero.Fs) {
	fs := afero.NewMemMapFs()
	return storage.NewFileStore(fs, "images"), fs
}

func seedDoctor(t *testing.T, db *gorm.DB, email string) *entity.Doctor {
	t.Helper()

	doctor := &entity.Doctor{
		Email:    email,
		Name:     "Dr. Test",
		Password: "$2a$10$abcdefghijklmnopqrstuv",
	}
	require.NoError(t, db.WithContext(context.Background()).Create(doctor).Error)
	return doctor
}

func seedPatient(t *testing.T, db *gorm.DB, cedula int64, doctorEmail string) *entity.Patient {
	t.Helper()

	patient := &entity.Patient{
		Cedula:      cedula,
		Name:        "Test Patient",
		DoctorEmail: doctorEmail,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(patient).Error)
	return patient
}
