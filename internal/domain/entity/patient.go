package entity

// Patient represents the patients table. The cedula (national
// identification number) is the primary key. DoctorEmail is a plain
// reference: deleting a doctor never cascades into their patients.
type Patient struct {
	Cedula      int64  `gorm:"primaryKey;autoIncrement:false" json:"cedula"`
	Name        string `gorm:"type:varchar(255)" json:"name,omitempty"`
	DoctorEmail string `gorm:"type:varchar(255);not null;index" json:"doctor_email"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorEmail;references:Email" json:"doctor,omitempty"`
	Images []Image `gorm:"foreignKey:PatientCedula;references:Cedula;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
