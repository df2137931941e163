package repository

import (
	"context"
	"errors"

	"clinic-records/internal/domain/entity"
	domainRepo "clinic-records/internal/domain/repository"

	"gorm.io/gorm"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) Create(ctx context.Context, db *gorm.DB, role *entity.Role) error {
	return db.WithContext(ctx).Create(role).Error
}

func (r *roleRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Role, error) {
	var role entity.Role
	err := db.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByIDs(ctx context.Context, db *gorm.DB, ids []int) ([]entity.Role, error) {
	var roles []entity.Role
	if len(ids) == 0 {
		return roles, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error) {
	var role entity.Role
	err := db.WithContext(ctx).Where("role_name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error) {
	var roles []entity.Role
	err := db.WithContext(ctx).Order("id ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) Update(ctx context.Context, db *gorm.DB, role *entity.Role) error {
	return db.WithContext(ctx).Save(role).Error
}

func (r *roleRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	if err := db.WithContext(ctx).Exec("DELETE FROM user_roles WHERE role_id = ?", id).Error; err != nil {
		return 0, err
	}
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Role{})
	return result.RowsAffected, result.Error
}
