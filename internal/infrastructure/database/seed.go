package database

import (
	"fmt"

	"clinic-records/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seed creates the roles and the GP specialization that registration depends on. Running it
// again changes nothing.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		roles := []entity.Role{
			{RoleName: entity.RoleDoctor, Description: "Doctor"},
			{RoleName: entity.RolePatient, Description: "Patient"},
		}
		for _, role := range roles {
			result := tx.Where(entity.Role{RoleName: role.RoleName}).FirstOrCreate(&role)
			if result.Error != nil {
				return fmt.Errorf("failed to seed role %s: %w", role.RoleName, result.Error)
			}
			if result.RowsAffected > 0 {
				logrus.Infof("Seeded role %s", role.RoleName)
			}
		}

		gp := entity.Specialization{Name: entity.SpecializationGP, Description: "General practitioner"}
		result := tx.Where(entity.Specialization{Name: gp.Name}).FirstOrCreate(&gp)
		if result.Error != nil {
			return fmt.Errorf("failed to seed GP specialization: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			logrus.Infof("Seeded specialization %s", gp.Name)
		}

		return nil
	})
}
