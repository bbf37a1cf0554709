package dto

import (
	"io"

	"github.com/google/uuid"
)

// CreateImageRequest is assembled by the handler from a multipart
// form: metadata fields plus the uploaded file stream.
type CreateImageRequest struct {
	Name          string `validate:"max=255"`
	PatientCedula int64  `validate:"required,gt=0"`
	Filename      string `validate:"required"`
	File          io.Reader
}

// UpdateImageRequest carries a partial metadata update; the stored
// file itself is immutable.
type UpdateImageRequest struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
}

type ImageResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name,omitempty"`
	FilePath      string    `json:"file_path"`
	PatientCedula int64     `json:"patient_cedula"`
}
