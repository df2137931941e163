package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	AccountFields
	IsGP              bool  `json:"is_gp"`
	SpecializationIDs []int `json:"specialization_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateDoctorRequest struct {
	FirstName         *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName          *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Phone             *string `json:"phone" validate:"omitempty,min=6,max=20"`
	Address           *string `json:"address" validate:"omitempty,max=255"`
	IsGP              *bool   `json:"is_gp"`
	SpecializationIDs *[]int  `json:"specialization_ids" validate:"omitempty,dive,gt=0"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID                `json:"id"`
	DoctorIdentity  string                   `json:"doctor_identity"`
	FirstName       string                   `json:"first_name"`
	LastName        string                   `json:"last_name"`
	FullName        string                   `json:"full_name"`
	Email           string                   `json:"email"`
	Phone           string                   `json:"phone"`
	IsGP            bool                     `json:"is_gp"`
	Specializations []SpecializationResponse `json:"specializations"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// DoctorSummary is the short doctor reference embedded in other responses.
type DoctorSummary struct {
	ID             uuid.UUID `json:"id"`
	DoctorIdentity string    `json:"doctor_identity"`
	FullName       string    `json:"full_name"`
}
