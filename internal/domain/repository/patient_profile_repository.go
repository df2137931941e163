package repository

import (
	"context"

	"clinic-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	FindByEGN(ctx context.Context, db *gorm.DB, egn string) (*entity.PatientProfile, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.PatientProfile, error)
	FindByPersonalDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.PatientProfile, error)
	CountByPersonalDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}
