package repository

import (
	"context"

	"clinic-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error)
	FindGPs(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	ExistsByIdentity(ctx context.Context, db *gorm.DB, identity string) (bool, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	ReplaceSpecializations(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile, specializations []entity.Specialization) error
	Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}
