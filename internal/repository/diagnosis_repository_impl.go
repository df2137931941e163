package repository

import (
	"context"
	"errors"

	"clinic-records/internal/domain/entity"
	domainRepo "clinic-records/internal/domain/repository"

	"gorm.io/gorm"
)

type diagnosisRepository struct{}

func NewDiagnosisRepository() domainRepo.DiagnosisRepository {
	return &diagnosisRepository{}
}

func (r *diagnosisRepository) Create(ctx context.Context, db *gorm.DB, diagnosis *entity.Diagnosis) error {
	return db.WithContext(ctx).Create(diagnosis).Error
}

func (r *diagnosisRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Diagnosis, error) {
	var diagnosis entity.Diagnosis
	err := db.WithContext(ctx).Where("id = ?", id).First(&diagnosis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diagnosis, nil
}

func (r *diagnosisRepository) FindByIDs(ctx context.Context, db *gorm.DB, ids []int) ([]entity.Diagnosis, error) {
	var diagnoses []entity.Diagnosis
	if len(ids) == 0 {
		return diagnoses, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Diagnosis, error) {
	var diagnoses []entity.Diagnosis
	err := db.WithContext(ctx).Order("name ASC, id ASC").Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) Update(ctx context.Context, db *gorm.DB, diagnosis *entity.Diagnosis) error {
	return db.WithContext(ctx).Save(diagnosis).Error
}

func (r *diagnosisRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	if err := db.WithContext(ctx).Exec("DELETE FROM examination_diagnoses WHERE diagnosis_id = ?", id).Error; err != nil {
		return 0, err
	}
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Diagnosis{})
	return result.RowsAffected, result.Error
}
