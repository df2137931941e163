package repository

import (
	"context"
	"errors"

	"clinic-records/internal/domain/entity"
	domainRepo "clinic-records/internal/domain/repository"

	"gorm.io/gorm"
)

type specializationRepository struct{}

func NewSpecializationRepository() domainRepo.SpecializationRepository {
	return &specializationRepository{}
}

func (r *specializationRepository) Create(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error {
	return db.WithContext(ctx).Create(specialization).Error
}

func (r *specializationRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Specialization, error) {
	var specialization entity.Specialization
	err := db.WithContext(ctx).Where("id = ?", id).First(&specialization).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialization, nil
}

func (r *specializationRepository) FindByIDs(ctx context.Context, db *gorm.DB, ids []int) ([]entity.Specialization, error) {
	var specializations []entity.Specialization
	if len(ids) == 0 {
		return specializations, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}

func (r *specializationRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Specialization, error) {
	var specialization entity.Specialization
	err := db.WithContext(ctx).Where("name = ?", name).First(&specialization).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialization, nil
}

func (r *specializationRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialization, error) {
	var specializations []entity.Specialization
	err := db.WithContext(ctx).Order("name ASC").Find(&specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}

func (r *specializationRepository) FindAllExcept(ctx context.Context, db *gorm.DB, name string) ([]entity.Specialization, error) {
	var specializations []entity.Specialization
	err := db.WithContext(ctx).Where("name <> ?", name).Order("name ASC").Find(&specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}

func (r *specializationRepository) Update(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error {
	return db.WithContext(ctx).Save(specialization).Error
}

func (r *specializationRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	if err := db.WithContext(ctx).Exec("DELETE FROM doctor_specializations WHERE specialization_id = ?", id).Error; err != nil {
		return 0, err
	}
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Specialization{})
	return result.RowsAffected, result.Error
}
