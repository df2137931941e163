package entity

// Role is a named permission set. Membership is additive.
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role names
const (
	RoleDoctor  = "ROLE_DOCTOR"
	RolePatient = "ROLE_PATIENT"
)

// User kinds accepted at registration
const (
	UserTypeDoctor  = "doctor"
	UserTypePatient = "patient"
)
