package entity

import "github.com/google/uuid"

// Aggregate rows returned by the statistics queries. These are not tables.

type GPPatientCount struct {
	DoctorID       uuid.UUID
	DoctorIdentity string
	PatientCount   int64
}

type DoctorVisitCount struct {
	DoctorID       uuid.UUID
	DoctorIdentity string
	VisitCount     int64
}

type DiagnosisFrequency struct {
	Diagnosis   string
	Occurrences int64
}

type DiagnosisPatientCount struct {
	Diagnosis    string
	PatientCount int64
}

type PatientWithDiagnosis struct {
	FirstName string
	LastName  string
	EGN       string `gorm:"column:egn"`
}

type DoctorSickLeaveCount struct {
	DoctorID       uuid.UUID
	DoctorIdentity string
	FirstName      *string
	LastName       *string
	SickLeaveCount int64
}
