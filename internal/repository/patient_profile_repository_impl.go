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

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) preloaded(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Preload("User").Preload("PersonalDoctor.User")
}

func (r *patientProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (r *patientProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := r.preloaded(ctx, db).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *patientProfileRepository) FindByEGN(ctx context.Context, db *gorm.DB, egn string) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := r.preloaded(ctx, db).Where("egn = ?", egn).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *patientProfileRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.PatientProfile, error) {
	var profiles []entity.PatientProfile
	err := r.preloaded(ctx, db).Order("egn ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *patientProfileRepository) FindByPersonalDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.PatientProfile, error) {
	var profiles []entity.PatientProfile
	err := r.preloaded(ctx, db).Where("personal_doctor_id = ?", doctorID).Order("egn ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *patientProfileRepository) CountByPersonalDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.PatientProfile{}).Where("personal_doctor_id = ?", doctorID).Count(&count).Error
	return count, err
}

func (r *patientProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

func (r *patientProfileRepository) Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.PatientProfile{})
	return result.RowsAffected, result.Error
}
