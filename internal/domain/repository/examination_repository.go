package repository

import (
	"context"

	"clinic-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExaminationRepository interface {
	Create(ctx context.Context, db *gorm.DB, examination *entity.Examination) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Examination, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Examination, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Examination, error)
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Examination, error)
	FindIDsByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]int, error)
	CountByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error)
	Update(ctx context.Context, db *gorm.DB, examination *entity.Examination) error
	ReplaceDiagnoses(ctx context.Context, db *gorm.DB, examination *entity.Examination, diagnoses []entity.Diagnosis) error
	DeleteByIDs(ctx context.Context, db *gorm.DB, ids []int) (int64, error)
}
