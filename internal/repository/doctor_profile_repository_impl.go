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

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.WithContext(ctx).
		Preload("User").
		Preload("Specializations").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.WithContext(ctx).
		Preload("User").
		Preload("Specializations").
		Order("doctor_identity ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindGPs(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.WithContext(ctx).
		Preload("User").
		Preload("Specializations").
		Where("is_gp = ?", true).
		Order("doctor_identity ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.DoctorProfile{}).Count(&count).Error
	return count, err
}

func (r *doctorProfileRepository) ExistsByIdentity(ctx context.Context, db *gorm.DB, identity string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.DoctorProfile{}).Where("doctor_identity = ?", identity).Count(&count).Error
	return count > 0, err
}

func (r *doctorProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

func (r *doctorProfileRepository) ReplaceSpecializations(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile, specializations []entity.Specialization) error {
	association := db.WithContext(ctx).Model(profile).Association("Specializations")
	if len(specializations) == 0 {
		if err := association.Clear(); err != nil {
			return err
		}
		profile.Specializations = nil
		return nil
	}
	if err := association.Replace(specializations); err != nil {
		return err
	}
	profile.Specializations = specializations
	return nil
}

// Delete removes the doctor's specialization links and profile row. The user row is left to the caller.
func (r *doctorProfileRepository) Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	if err := db.WithContext(ctx).Exec("DELETE FROM doctor_specializations WHERE doctor_id = ?", userID).Error; err != nil {
		return 0, err
	}
	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.DoctorProfile{})
	return result.RowsAffected, result.Error
}
