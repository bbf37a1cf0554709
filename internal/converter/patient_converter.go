package converter

import (
	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to a PatientResponse DTO.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		Cedula:      patient.Cedula,
		Name:        patient.Name,
		DoctorEmail: patient.DoctorEmail,
	}
}

// PatientsToResponses converts a slice of Patient entities.
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
