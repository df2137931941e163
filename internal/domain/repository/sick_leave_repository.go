package repository

import (
	"context"

	"clinic-records/internal/domain/entity"

	"gorm.io/gorm"
)

type SickLeaveRepository interface {
	Create(ctx context.Context, db *gorm.DB, sickLeave *entity.SickLeave) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.SickLeave, error)
	FindByExaminationID(ctx context.Context, db *gorm.DB, examinationID int) (*entity.SickLeave, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.SickLeave, error)
	Update(ctx context.Context, db *gorm.DB, sickLeave *entity.SickLeave) error
	Delete(ctx context.Context, db *gorm.DB, id int) (int64, error)
	DeleteByExaminationIDs(ctx context.Context, db *gorm.DB, examinationIDs []int) (int64, error)
}
