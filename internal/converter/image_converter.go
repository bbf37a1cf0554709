package converter

import (
	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
)

// ImageToResponse converts an Image entity to an ImageResponse DTO.
func ImageToResponse(image *entity.Image) *dto.ImageResponse {
	if image == nil {
		return nil
	}

	return &dto.ImageResponse{
		ID:            image.ID,
		Name:          image.Name,
		FilePath:      image.FilePath,
		PatientCedula: image.PatientCedula,
	}
}

// ImagesToResponses converts a slice of Image entities.
func ImagesToResponses(images []entity.Image) []dto.ImageResponse {
	responses := make([]dto.ImageResponse, 0, len(images))
	for i := range images {
		responses = append(responses, *ImageToResponse(&images[i]))
	}
	return responses
}
