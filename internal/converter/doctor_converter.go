package converter

import (
	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to a DoctorResponse DTO.
// The password hash never leaves the entity.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		Email: doctor.Email,
		Name:  doctor.Name,
	}
}

// DoctorsToResponses converts a slice of Doctor entities.
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		responses = append(responses, *DoctorToResponse(&doctors[i]))
	}
	return responses
}
