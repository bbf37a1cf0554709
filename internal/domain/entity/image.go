package entity

import (
	"github.com/google/uuid"
)

// Image represents the images table. The id is generated in the
// usecase before any file I/O so the same uuid names both the row and
// the file on disk.
type Image struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255)" json:"name,omitempty"`
	FilePath      string    `gorm:"type:text;not null" json:"file_path"`
	PatientCedula int64     `gorm:"not null;index" json:"patient_cedula"`

	// Relationships
	Patient     *Patient     `gorm:"foreignKey:PatientCedula;references:Cedula" json:"patient,omitempty"`
	Predictions []Prediction `gorm:"foreignKey:ImageID;references:ID;constraint:OnDelete:CASCADE" json:"predictions,omitempty"`
}

func (Image) TableName() string {
	return "images"
}
