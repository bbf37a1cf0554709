package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/usecase"
	"melanoma-screening-api/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPatientUsecase lets each test script the usecase outcome so the
// handler's decoding, validation and status mapping are exercised in
// isolation.
type stubPatientUsecase struct {
	createFn func(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	getFn    func(ctx context.Context, cedula int64) (*dto.PatientResponse, error)
	deleteFn func(ctx context.Context, cedula int64) error
}

func (s *stubPatientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubPatientUsecase) GetPatient(ctx context.Context, cedula int64) (*dto.PatientResponse, error) {
	return s.getFn(ctx, cedula)
}

func (s *stubPatientUsecase) GetPatients(ctx context.Context, offset, limit int) ([]dto.PatientResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubPatientUsecase) GetPatientsByDoctor(ctx context.Context, doctorEmail string, offset, limit int) ([]dto.PatientResponse, error) {
	return nil, nil
}

func (s *stubPatientUsecase) UpdatePatient(ctx context.Context, cedula int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	return nil, nil
}

func (s *stubPatientUsecase) DeletePatient(ctx context.Context, cedula int64) error {
	return s.deleteFn(ctx, cedula)
}

func TestCreatePatientCreated(t *testing.T) {
	stub := &stubPatientUsecase{
		createFn: func(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
			return &dto.PatientResponse{Cedula: req.Cedula, Name: req.Name, DoctorEmail: req.DoctorEmail}, nil
		},
	}
	h := NewPatientHandler(stub, validator.NewValidator())

	body := `{"cedula": 1001, "name": "Maria", "doctor_email": "ana@clinic.test"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.CreatePatient(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool                `json:"success"`
		Data    dto.PatientResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, int64(1001), envelope.Data.Cedula)
}

func TestCreatePatientValidationError(t *testing.T) {
	h := NewPatientHandler(&stubPatientUsecase{}, validator.NewValidator())

	// Missing cedula and a malformed doctor_email
	body := `{"name": "Maria", "doctor_email": "not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.CreatePatient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Validation failed", envelope.Message)
}

func TestCreatePatientDuplicateCedula(t *testing.T) {
	stub := &stubPatientUsecase{
		createFn: func(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
			return nil, usecase.ErrCedulaAlreadyExists
		},
	}
	h := NewPatientHandler(stub, validator.NewValidator())

	body := `{"cedula": 1001, "doctor_email": "ana@clinic.test"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.CreatePatient(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetPatientNotFound(t *testing.T) {
	stub := &stubPatientUsecase{
		getFn: func(ctx context.Context, cedula int64) (*dto.PatientResponse, error) {
			return nil, usecase.ErrPatientNotFound
		},
	}
	h := NewPatientHandler(stub, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/9999", nil)
	req = mux.SetURLVars(req, map[string]string{"cedula": "9999"})
	rec := httptest.NewRecorder()

	h.GetPatient(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPatientInvalidCedula(t *testing.T) {
	h := NewPatientHandler(&stubPatientUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"cedula": "abc"})
	rec := httptest.NewRecorder()

	h.GetPatient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePatientNoContent(t *testing.T) {
	stub := &stubPatientUsecase{
		deleteFn: func(ctx context.Context, cedula int64) error {
			return nil
		},
	}
	h := NewPatientHandler(stub, validator.NewValidator())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/patients/1001", nil)
	req = mux.SetURLVars(req, map[string]string{"cedula": "1001"})
	rec := httptest.NewRecorder()

	h.DeletePatient(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
