package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// User is the shared account record. Exactly one of DoctorProfile or PatientProfile is attached,
// and the user's roles tell which one.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	BirthDate time.Time `gorm:"type:date;not null" json:"birth_date"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Gender    Gender    `gorm:"type:varchar(10);not null" json:"gender"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Roles          []Role          `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	DoctorProfile  *DoctorProfile  `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.RoleName)
	}
	return names
}

func (u User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.RoleName == name {
			return true
		}
	}
	return false
}

// Kind is the account variant selected by the roles. Empty when the user holds neither role.
func (u User) Kind() string {
	switch {
	case u.HasRole(RoleDoctor):
		return UserTypeDoctor
	case u.HasRole(RolePatient):
		return UserTypePatient
	}
	return ""
}
