package entity

// Doctor represents the doctors table. The email address is the
// primary key; there is no surrogate id.
type Doctor struct {
	Email    string `gorm:"type:varchar(255);primaryKey" json:"email"`
	Name     string `gorm:"type:varchar(255)" json:"name,omitempty"`
	Password string `gorm:"type:text;not null" json:"-"`

	// Relationships
	Patients []Patient `gorm:"foreignKey:DoctorEmail;references:Email" json:"patients,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
