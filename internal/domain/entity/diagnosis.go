package entity

type Diagnosis struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(150);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}
