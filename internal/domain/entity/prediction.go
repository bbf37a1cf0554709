package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prediction represents the predictions table: one segmentation mask
// produced for an image. Timestamp is assigned by the server when the
// record is created.
type Prediction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FilePath  string    `gorm:"type:text;not null" json:"file_path"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	ImageID   uuid.UUID `gorm:"type:uuid;not null;index" json:"image_id"`

	// Relationships
	Image *Image `gorm:"foreignKey:ImageID;references:ID" json:"image,omitempty"`
}

func (Prediction) TableName() string {
	return "predictions"
}
