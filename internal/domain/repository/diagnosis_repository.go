package repository

import (
	"context"

	"clinic-records/internal/domain/entity"

	"gorm.io/gorm"
)

type DiagnosisRepository interface {
	Create(ctx context.Context, db *gorm.DB, diagnosis *entity.Diagnosis) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Diagnosis, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []int) ([]entity.Diagnosis, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Diagnosis, error)
	Update(ctx context.Context, db *gorm.DB, diagnosis *entity.Diagnosis) error
	Delete(ctx context.Context, db *gorm.DB, id int) (int64, error)
}
