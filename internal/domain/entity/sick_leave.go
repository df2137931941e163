package entity

import "time"

// SickLeave is issued as part of a single examination.
type SickLeave struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StartDate     time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate       time.Time `gorm:"type:date;not null" json:"end_date"`
	Note          string    `gorm:"type:text" json:"note,omitempty"`
	ExaminationID int       `gorm:"not null;uniqueIndex" json:"examination_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Examination *Examination `gorm:"foreignKey:ExaminationID" json:"examination,omitempty"`
}

func (SickLeave) TableName() string {
	return "sick_leaves"
}

// Days is the number of calendar days between StartDate and EndDate. It is never stored.
func (s SickLeave) Days() int {
	start := DateOnly(s.StartDate)
	end := DateOnly(s.EndDate)
	return int(end.Sub(start).Hours() / 24)
}

// DateOnly drops the clock part of t and pins it to UTC midnight of the same calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
