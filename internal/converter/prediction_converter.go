package converter

import (
	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/domain/entity"
)

// PredictionToResponse converts a Prediction entity to a
// PredictionResponse DTO.
func PredictionToResponse(prediction *entity.Prediction) *dto.PredictionResponse {
	if prediction == nil {
		return nil
	}

	return &dto.PredictionResponse{
		ID:        prediction.ID,
		FilePath:  prediction.FilePath,
		Timestamp: prediction.Timestamp,
		ImageID:   prediction.ImageID,
	}
}

// PredictionsToResponses converts a slice of Prediction entities.
func PredictionsToResponses(predictions []entity.Prediction) []dto.PredictionResponse {
	responses := make([]dto.PredictionResponse, 0, len(predictions))
	for i := range predictions {
		responses = append(responses, *PredictionToResponse(&predictions[i]))
	}
	return responses
}
