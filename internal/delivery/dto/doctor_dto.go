package dto

// RegisterDoctorRequest creates a doctor account. The password is
// bcrypt-hashed before it reaches the database.
type RegisterDoctorRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateDoctorRequest carries a partial update: nil fields are left
// untouched.
type UpdateDoctorRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type DoctorResponse struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
