package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// CreatePredictionRequest is assembled by the handler from a multipart
// form: the owning image id plus the uploaded mask file.
type CreatePredictionRequest struct {
	ImageID  uuid.UUID `validate:"required"`
	Filename string    `validate:"required"`
	File     io.Reader
}

type PredictionResponse struct {
	ID        uuid.UUID `json:"id"`
	FilePath  string    `json:"file_path"`
	Timestamp time.Time `json:"timestamp"`
	ImageID   uuid.UUID `json:"image_id"`
}
