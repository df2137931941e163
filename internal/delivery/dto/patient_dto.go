package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	AccountFields
	EGN              string    `json:"egn" validate:"required,egn"`
	HasPaidInsurance bool      `json:"has_paid_insurance"`
	PersonalDoctorID uuid.UUID `json:"personal_doctor_id" validate:"required"`
}

type UpdatePatientRequest struct {
	FirstName        *string    `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName         *string    `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email            *string    `json:"email" validate:"omitempty,email"`
	Phone            *string    `json:"phone" validate:"omitempty,min=6,max=20"`
	Address          *string    `json:"address" validate:"omitempty,max=255"`
	EGN              *string    `json:"egn" validate:"omitempty,egn"`
	HasPaidInsurance *bool      `json:"has_paid_insurance"`
	PersonalDoctorID *uuid.UUID `json:"personal_doctor_id"`
}

// Response DTOs

type PatientResponse struct {
	ID               uuid.UUID      `json:"id"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	FullName         string         `json:"full_name"`
	EGN              string         `json:"egn"`
	HasPaidInsurance bool           `json:"has_paid_insurance"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	PersonalDoctor   *DoctorSummary `json:"personal_doctor,omitempty"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

// PatientSummary is the short patient reference embedded in other responses.
type PatientSummary struct {
	ID       uuid.UUID `json:"id"`
	EGN      string    `json:"egn"`
	FullName string    `json:"full_name"`
}
