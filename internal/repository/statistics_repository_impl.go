package repository

import (
	"context"
	"time"

	"clinic-records/internal/domain/entity"
	domainRepo "clinic-records/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statisticsRepository struct{}

func NewStatisticsRepository() domainRepo.StatisticsRepository {
	return &statisticsRepository{}
}

// PatientCountByGPs includes general practitioners without patients.
func (r *statisticsRepository) PatientCountByGPs(ctx context.Context, db *gorm.DB) ([]entity.GPPatientCount, error) {
	var rows []entity.GPPatientCount
	err := db.WithContext(ctx).
		Table("doctor_profiles AS d").
		Select("d.user_id AS doctor_id, d.doctor_identity AS doctor_identity, COUNT(p.user_id) AS patient_count").
		Joins("LEFT JOIN patient_profiles p ON p.personal_doctor_id = d.user_id").
		Where("d.is_gp = ?", true).
		Group("d.user_id, d.doctor_identity").
		Order("patient_count DESC, d.doctor_identity ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statisticsRepository) TotalPatientsWithGP(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Table("patient_profiles AS p").
		Joins("JOIN doctor_profiles d ON d.user_id = p.personal_doctor_id").
		Where("d.is_gp = ?", true).
		Count(&total).Error
	return total, err
}

func (r *statisticsRepository) VisitCountPerDoctor(ctx context.Context, db *gorm.DB) ([]entity.DoctorVisitCount, error) {
	var rows []entity.DoctorVisitCount
	err := db.WithContext(ctx).
		Table("examinations AS e").
		Select("d.user_id AS doctor_id, d.doctor_identity AS doctor_identity, COUNT(e.id) AS visit_count").
		Joins("JOIN doctor_profiles d ON d.user_id = e.doctor_id").
		Group("d.user_id, d.doctor_identity").
		Order("visit_count DESC, d.doctor_identity ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statisticsRepository) CountExaminations(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Examination{}).Count(&total).Error
	return total, err
}

func (r *statisticsRepository) DiagnosisFrequency(ctx context.Context, db *gorm.DB) ([]entity.DiagnosisFrequency, error) {
	var rows []entity.DiagnosisFrequency
	err := db.WithContext(ctx).
		Table("examination_diagnoses AS ed").
		Select("dg.name AS diagnosis, COUNT(*) AS occurrences").
		Joins("JOIN diagnoses dg ON dg.id = ed.diagnosis_id").
		Group("dg.name").
		Order("occurrences DESC, dg.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DiagnosisPatientCounts counts distinct patients per diagnosis name. Diagnoses never used in an
// examination are left out.
func (r *statisticsRepository) DiagnosisPatientCounts(ctx context.Context, db *gorm.DB) ([]entity.DiagnosisPatientCount, error) {
	var rows []entity.DiagnosisPatientCount
	err := db.WithContext(ctx).
		Table("diagnoses AS dg").
		Select("dg.name AS diagnosis, COUNT(DISTINCT e.patient_id) AS patient_count").
		Joins("JOIN examination_diagnoses ed ON ed.diagnosis_id = dg.id").
		Joins("JOIN examinations e ON e.id = ed.examination_id").
		Group("dg.name").
		Order("patient_count DESC, dg.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statisticsRepository) PatientsByDiagnosis(ctx context.Context, db *gorm.DB, diagnosisName string) ([]entity.PatientWithDiagnosis, error) {
	var rows []entity.PatientWithDiagnosis
	err := db.WithContext(ctx).
		Table("patient_profiles AS p").
		Select("DISTINCT u.first_name AS first_name, u.last_name AS last_name, p.egn AS egn").
		Joins("JOIN users u ON u.id = p.user_id").
		Joins("JOIN examinations e ON e.patient_id = p.user_id").
		Joins("JOIN examination_diagnoses ed ON ed.examination_id = e.id").
		Joins("JOIN diagnoses dg ON dg.id = ed.diagnosis_id").
		Where("dg.name = ?", diagnosisName).
		Order("last_name ASC, first_name ASC, egn ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statisticsRepository) DoctorsBySickLeaveCount(ctx context.Context, db *gorm.DB, limit int) ([]entity.DoctorSickLeaveCount, error) {
	var rows []entity.DoctorSickLeaveCount
	err := db.WithContext(ctx).
		Table("sick_leaves AS s").
		Select("d.user_id AS doctor_id, d.doctor_identity AS doctor_identity, u.first_name AS first_name, u.last_name AS last_name, COUNT(s.id) AS sick_leave_count").
		Joins("JOIN examinations e ON e.id = s.examination_id").
		Joins("JOIN doctor_profiles d ON d.user_id = e.doctor_id").
		Joins("LEFT JOIN users u ON u.id = d.user_id").
		Group("d.user_id, d.doctor_identity, u.first_name, u.last_name").
		Order("sick_leave_count DESC, d.doctor_identity ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SickLeaveStartDates returns start dates in the half-open range [from, to).
func (r *statisticsRepository) SickLeaveStartDates(ctx context.Context, db *gorm.DB, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := db.WithContext(ctx).
		Model(&entity.SickLeave{}).
		Where("start_date >= ? AND start_date < ?", from, to).
		Pluck("start_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// ExaminationsByPeriod uses inclusive bounds on both ends.
func (r *statisticsRepository) ExaminationsByPeriod(ctx context.Context, db *gorm.DB, start, end time.Time, doctorID *uuid.UUID) ([]entity.Examination, error) {
	query := withDetails(db.WithContext(ctx)).
		Joins("JOIN doctor_profiles d ON d.user_id = examinations.doctor_id").
		Where("examinations.examination_date BETWEEN ? AND ?", start, end)
	if doctorID != nil {
		query = query.Where("examinations.doctor_id = ?", *doctorID)
	}

	var examinations []entity.Examination
	err := query.
		Order("examinations.examination_date DESC, d.doctor_identity ASC, examinations.id ASC").
		Find(&examinations).Error
	if err != nil {
		return nil, err
	}
	return examinations, nil
}
