package entity

import (
	"time"

	"github.com/google/uuid"
)

// Examination is one visit of a patient to a doctor.
type Examination struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ExaminationDate time.Time `gorm:"type:date;not null;index" json:"examination_date"`
	Treatment       string    `gorm:"type:text" json:"treatment,omitempty"`
	DoctorID        uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor    *DoctorProfile  `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
	Patient   *PatientProfile `gorm:"foreignKey:PatientID;references:UserID" json:"patient,omitempty"`
	Diagnoses []Diagnosis     `gorm:"many2many:examination_diagnoses;" json:"diagnoses,omitempty"`
	SickLeave *SickLeave      `gorm:"foreignKey:ExaminationID" json:"sick_leave,omitempty"`
}

func (Examination) TableName() string {
	return "examinations"
}
