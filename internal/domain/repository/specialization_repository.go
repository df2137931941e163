package repository

import (
	"context"

	"clinic-records/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecializationRepository interface {
	Create(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Specialization, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []int) ([]entity.Specialization, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Specialization, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialization, error)
	FindAllExcept(ctx context.Context, db *gorm.DB, name string) ([]entity.Specialization, error)
	Update(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error
	Delete(ctx context.Context, db *gorm.DB, id int) (int64, error)
}
