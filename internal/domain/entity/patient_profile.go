package entity

import "github.com/google/uuid"

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	EGN              string    `gorm:"column:egn;type:char(10);uniqueIndex;not null" json:"egn"`
	HasPaidInsurance bool      `gorm:"not null" json:"has_paid_insurance"`
	PersonalDoctorID uuid.UUID `gorm:"type:uuid;not null;index" json:"personal_doctor_id"`

	// Relationships
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PersonalDoctor *DoctorProfile `gorm:"foreignKey:PersonalDoctorID;references:UserID" json:"personal_doctor,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
