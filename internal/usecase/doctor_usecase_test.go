package usecase

import (
	"context"
	"testing"

	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDoctorUsecase(t *testing.T) (DoctorUsecase, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewDoctorUsecase(env.db, env.log, env.doctorRepo), env
}

func TestRegisterDoctor(t *testing.T) {
	u, env := newDoctorUsecase(t)
	ctx := context.Background()

	doctor, err := u.Register(ctx, &dto.RegisterDoctorRequest{
		Email:    "ana@clinic.test",
		Name:     "Dr. Ana",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@clinic.test", doctor.Email)
	assert.Equal(t, "Dr. Ana", doctor.Name)

	// The stored password is a bcrypt hash, not the plaintext
	var stored entity.Doctor
	require.NoError(t, env.db.Where("email = ?", "ana@clinic.test").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")))
}

func TestRegisterDoctorDuplicateEmail(t *testing.T) {
	u, _ := newDoctorUsecase(t)
	ctx := context.Background()

	req := &dto.RegisterDoctorRequest{
		Email:    "ana@clinic.test",
		Password: "supersecret",
	}
	_, err := u.Register(ctx, req)
	require.NoError(t, err)

	_, err = u.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestGetDoctorNotFound(t *testing.T) {
	u, _ := newDoctorUsecase(t)

	_, err := u.GetDoctor(context.Background(), "ghost@clinic.test")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestUpdateDoctorPartial(t *testing.T) {
	u, env := newDoctorUsecase(t)
	ctx := context.Background()

	seedDoctor(t, env.db, "ana@clinic.test")

	newName := "Dr. Ana Maria"
	updated, err := u.UpdateDoctor(ctx, "ana@clinic.test", &dto.UpdateDoctorRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	// The password field was not supplied and must be untouched
	var stored entity.Doctor
	require.NoError(t, env.db.Where("email = ?", "ana@clinic.test").First(&stored).Error)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", stored.Password)
}

func TestDeleteDoctorWithPatientsFails(t *testing.T) {
	u, env := newDoctorUsecase(t)
	ctx := context.Background()

	seedDoctor(t, env.db, "ana@clinic.test")
	seedPatient(t, env.db, 1001, "ana@clinic.test")

	err := u.DeleteDoctor(ctx, "ana@clinic.test")
	assert.ErrorIs(t, err, ErrDoctorHasPatients)

	// The patient keeps its reference; nothing cascaded
	var patient entity.Patient
	require.NoError(t, env.db.Where("cedula = ?", 1001).First(&patient).Error)
	assert.Equal(t, "ana@clinic.test", patient.DoctorEmail)
}

func TestDeleteDoctorWithoutPatients(t *testing.T) {
	u, env := newDoctorUsecase(t)
	ctx := context.Background()

	seedDoctor(t, env.db, "ana@clinic.test")

	require.NoError(t, u.DeleteDoctor(ctx, "ana@clinic.test"))

	_, err := u.GetDoctor(ctx, "ana@clinic.test")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDeleteDoctorNotFound(t *testing.T) {
	u, _ := newDoctorUsecase(t)

	err := u.DeleteDoctor(context.Background(), "ghost@clinic.test")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
