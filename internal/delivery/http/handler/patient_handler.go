package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/usecase"
	"melanoma-screening-api/pkg/response"
	"melanoma-screening-api/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func parseCedula(r *http.Request) (int64, bool) {
	cedula, err := strconv.ParseInt(mux.Vars(r)["cedula"], 10, 64)
	return cedula, err == nil
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Referenced doctor not found")
		case usecase.ErrCedulaAlreadyExists:
			response.Conflict(w, "A patient with this cedula already exists")
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	cedula, ok := parseCedula(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid cedula", nil)
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), cedula)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "", patient)
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	offset, limit := parseOffsetLimit(r)

	patients, total, err := h.patientUsecase.GetPatients(r.Context(), offset, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", patients, &response.Meta{
		Offset: offset,
		Limit:  limit,
		Total:  total,
	})
}

func (h *PatientHandler) GetPatientsByDoctor(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	offset, limit := parseOffsetLimit(r)

	patients, err := h.patientUsecase.GetPatientsByDoctor(r.Context(), email, offset, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "", patients)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	cedula, ok := parseCedula(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid cedula", nil)
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), cedula, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Referenced doctor not found")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	cedula, ok := parseCedula(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid cedula", nil)
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), cedula); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.NoContent(w)
}
