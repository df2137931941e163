package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GPPatientCountResponse struct {
	DoctorID       uuid.UUID       `json:"doctor_id"`
	DoctorIdentity string          `json:"doctor_identity"`
	PatientCount   int64           `json:"patient_count"`
	Share          decimal.Decimal `json:"share_percent"`
}

type GPPatientStatisticsResponse struct {
	Doctors []GPPatientCountResponse `json:"doctors"`
	Total   int64                    `json:"total"`
}

type DoctorVisitCountResponse struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	DoctorIdentity string    `json:"doctor_identity"`
	VisitCount     int64     `json:"visit_count"`
}

type VisitStatisticsResponse struct {
	Doctors           []DoctorVisitCountResponse `json:"doctors"`
	TotalExaminations int64                      `json:"total_examinations"`
}

type DiagnosisFrequencyResponse struct {
	Diagnosis   string `json:"diagnosis"`
	Occurrences int64  `json:"occurrences"`
}

type DiagnosisPatientCountResponse struct {
	Diagnosis    string `json:"diagnosis"`
	PatientCount int64  `json:"patient_count"`
}

type PatientWithDiagnosisResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	EGN       string `json:"egn"`
}

type DoctorSickLeaveCountResponse struct {
	DoctorID       *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorIdentity string     `json:"doctor_identity,omitempty"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	FullName       string     `json:"full_name"`
	SickLeaveCount int64      `json:"sick_leave_count"`
	HasSickLeaves  bool       `json:"has_sick_leaves"`
}

// PeakSickLeaveMonthResponse carries Month, MonthName, Count and Summary only when HasSickLeaves is true.
type PeakSickLeaveMonthResponse struct {
	Year          int    `json:"year"`
	Month         int    `json:"month,omitempty"`
	MonthName     string `json:"month_name,omitempty"`
	Count         int    `json:"count,omitempty"`
	Summary       string `json:"summary,omitempty"`
	Message       string `json:"message,omitempty"`
	HasSickLeaves bool   `json:"has_sick_leaves"`
}
