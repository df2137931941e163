package repository

import (
	"context"
	"time"

	"clinic-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatisticsRepository runs read-only aggregate queries. Only grouping, counting, ordering and
// date-range filtering are pushed to the database.
type StatisticsRepository interface {
	PatientCountByGPs(ctx context.Context, db *gorm.DB) ([]entity.GPPatientCount, error)
	TotalPatientsWithGP(ctx context.Context, db *gorm.DB) (int64, error)
	VisitCountPerDoctor(ctx context.Context, db *gorm.DB) ([]entity.DoctorVisitCount, error)
	CountExaminations(ctx context.Context, db *gorm.DB) (int64, error)
	DiagnosisFrequency(ctx context.Context, db *gorm.DB) ([]entity.DiagnosisFrequency, error)
	DiagnosisPatientCounts(ctx context.Context, db *gorm.DB) ([]entity.DiagnosisPatientCount, error)
	PatientsByDiagnosis(ctx context.Context, db *gorm.DB, diagnosisName string) ([]entity.PatientWithDiagnosis, error)
	DoctorsBySickLeaveCount(ctx context.Context, db *gorm.DB, limit int) ([]entity.DoctorSickLeaveCount, error)
	SickLeaveStartDates(ctx context.Context, db *gorm.DB, from, to time.Time) ([]time.Time, error)
	ExaminationsByPeriod(ctx context.Context, db *gorm.DB, start, end time.Time, doctorID *uuid.UUID) ([]entity.Examination, error)
}
