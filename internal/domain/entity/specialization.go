package entity

type Specialization struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Specialization) TableName() string {
	return "specializations"
}

// SpecializationGP must exist before a doctor can be registered as a general practitioner.
const SpecializationGP = "GP"
