package repository

import (
	"context"
	"errors"

	"clinic-records/internal/domain/entity"
	domainRepo "clinic-records/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type examinationRepository struct{}

func NewExaminationRepository() domainRepo.ExaminationRepository {
	return &examinationRepository{}
}

// withDetails preloads everything an examination response shows.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Doctor.User").
		Preload("Patient.User").
		Preload("Diagnoses", func(db *gorm.DB) *gorm.DB { return db.Order("diagnoses.id ASC") }).
		Preload("SickLeave")
}

func (r *examinationRepository) Create(ctx context.Context, db *gorm.DB, examination *entity.Examination) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(examination).Error
}

func (r *examinationRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Examination, error) {
	var examination entity.Examination
	err := withDetails(db.WithContext(ctx)).Where("id = ?", id).First(&examination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &examination, nil
}

func (r *examinationRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Examination, error) {
	var examinations []entity.Examination
	err := withDetails(db.WithContext(ctx)).Order("examination_date DESC, id ASC").Find(&examinations).Error
	if err != nil {
		return nil, err
	}
	return examinations, nil
}

func (r *examinationRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Examination, error) {
	var examinations []entity.Examination
	err := withDetails(db.WithContext(ctx)).
		Where("patient_id = ?", patientID).
		Order("examination_date DESC, id ASC").
		Find(&examinations).Error
	if err != nil {
		return nil, err
	}
	return examinations, nil
}

func (r *examinationRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Examination, error) {
	var examinations []entity.Examination
	err := withDetails(db.WithContext(ctx)).
		Where("doctor_id = ?", doctorID).
		Order("examination_date DESC, id ASC").
		Find(&examinations).Error
	if err != nil {
		return nil, err
	}
	return examinations, nil
}

func (r *examinationRepository) FindIDsByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]int, error) {
	var ids []int
	err := db.WithContext(ctx).Model(&entity.Examination{}).Where("patient_id = ?", patientID).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *examinationRepository) CountByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Examination{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	return count, err
}

func (r *examinationRepository) Update(ctx context.Context, db *gorm.DB, examination *entity.Examination) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(examination).Error
}

func (r *examinationRepository) ReplaceDiagnoses(ctx context.Context, db *gorm.DB, examination *entity.Examination, diagnoses []entity.Diagnosis) error {
	association := db.WithContext(ctx).Model(examination).Association("Diagnoses")
	if len(diagnoses) == 0 {
		if err := association.Clear(); err != nil {
			return err
		}
		examination.Diagnoses = nil
		return nil
	}
	if err := association.Replace(diagnoses); err != nil {
		return err
	}
	examination.Diagnoses = diagnoses
	return nil
}

// DeleteByIDs removes diagnosis links and the examinations. Sick leaves must be removed first.
func (r *examinationRepository) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if err := db.WithContext(ctx).Exec("DELETE FROM examination_diagnoses WHERE examination_id IN ?", ids).Error; err != nil {
		return 0, err
	}
	result := db.WithContext(ctx).Where("id IN ?", ids).Delete(&entity.Examination{})
	return result.RowsAffected, result.Error
}
