package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DoctorIdentity string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"doctor_identity"`
	IsGP           bool      `gorm:"not null;index" json:"is_gp"`

	// Relationships
	User            User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specializations []Specialization `gorm:"many2many:doctor_specializations;joinForeignKey:DoctorID;joinReferences:SpecializationID" json:"specializations,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// DoctorIdentityFor formats the sequential doctor code, e.g. DOC001.
func DoctorIdentityFor(seq int64) string {
	return fmt.Sprintf("DOC%03d", seq)
}
