package dto

import "github.com/google/uuid"

// Request DTOs

type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// RegisterRequest registers either a doctor or a patient depending on UserType.
// Doctor-only fields: is_gp, specialization_ids. Patient-only fields: egn, has_paid_insurance, personal_doctor_id.
type RegisterRequest struct {
	UserType string `json:"user_type" validate:"required"`
	AccountFields

	IsGP              bool  `json:"is_gp"`
	SpecializationIDs []int `json:"specialization_ids" validate:"omitempty,dive,gt=0"`

	EGN              string    `json:"egn"`
	HasPaidInsurance bool      `json:"has_paid_insurance"`
	PersonalDoctorID uuid.UUID `json:"personal_doctor_id"`
}

// AccountFields are shared by every user kind.
type AccountFields struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"required,min=6,max=20"`
	Address   string `json:"address" validate:"omitempty,max=255"`
	Gender    string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
}

// Response DTOs

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	Authorities []string     `json:"authorities"`
	User        UserResponse `json:"user"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
