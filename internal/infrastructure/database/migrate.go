package database

import (
	"fmt"

	"clinic-records/internal/domain/entity"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table, join tables included.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Role{},
		&entity.Specialization{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.Diagnosis{},
		&entity.Examination{},
		&entity.SickLeave{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
