package dto

type CreatePatientRequest struct {
	Cedula      int64  `json:"cedula" validate:"required,gt=0"`
	Name        string `json:"name" validate:"max=255"`
	DoctorEmail string `json:"doctor_email" validate:"required,email"`
}

// UpdatePatientRequest carries a partial update: nil fields are left
// untouched. A doctor_email change is validated against the doctors
// table before it is applied.
type UpdatePatientRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	DoctorEmail *string `json:"doctor_email" validate:"omitempty,email"`
}

type PatientResponse struct {
	Cedula      int64  `json:"cedula"`
	Name        string `json:"name,omitempty"`
	DoctorEmail string `json:"doctor_email"`
}
