package repository

import (
	"context"
	"errors"

	"clinic-records/internal/domain/entity"
	domainRepo "clinic-records/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sickLeaveRepository struct{}

func NewSickLeaveRepository() domainRepo.SickLeaveRepository {
	return &sickLeaveRepository{}
}

func (r *sickLeaveRepository) Create(ctx context.Context, db *gorm.DB, sickLeave *entity.SickLeave) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(sickLeave).Error
}

func (r *sickLeaveRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.SickLeave, error) {
	var sickLeave entity.SickLeave
	err := db.WithContext(ctx).Preload("Examination").Where("id = ?", id).First(&sickLeave).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sickLeave, nil
}

func (r *sickLeaveRepository) FindByExaminationID(ctx context.Context, db *gorm.DB, examinationID int) (*entity.SickLeave, error) {
	var sickLeave entity.SickLeave
	err := db.WithContext(ctx).Where("examination_id = ?", examinationID).First(&sickLeave).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sickLeave, nil
}

func (r *sickLeaveRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.SickLeave, error) {
	var sickLeaves []entity.SickLeave
	err := db.WithContext(ctx).Preload("Examination").Order("start_date DESC, id ASC").Find(&sickLeaves).Error
	if err != nil {
		return nil, err
	}
	return sickLeaves, nil
}

func (r *sickLeaveRepository) Update(ctx context.Context, db *gorm.DB, sickLeave *entity.SickLeave) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(sickLeave).Error
}

func (r *sickLeaveRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SickLeave{})
	return result.RowsAffected, result.Error
}

func (r *sickLeaveRepository) DeleteByExaminationIDs(ctx context.Context, db *gorm.DB, examinationIDs []int) (int64, error) {
	if len(examinationIDs) == 0 {
		return 0, nil
	}
	result := db.WithContext(ctx).Where("examination_id IN ?", examinationIDs).Delete(&entity.SickLeave{})
	return result.RowsAffected, result.Error
}
