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

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).
		Preload("Roles").
		Preload("DoctorProfile").
		Preload("PatientProfile").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, db *gorm.DB, login string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).
		Preload("Roles").
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).Preload("Roles").Order("last_name ASC, first_name ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ExistsBy reports whether another user already holds value in one of the unique columns.
func (r *userRepository) ExistsBy(ctx context.Context, db *gorm.DB, column, value string, excludeID *uuid.UUID) (bool, error) {
	switch column {
	case domainRepo.UserColumnUsername, domainRepo.UserColumnEmail, domainRepo.UserColumnPhone:
	default:
		return false, errors.New("unsupported user column: " + column)
	}

	query := db.WithContext(ctx).Model(&entity.User{}).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) AppendRoles(ctx context.Context, db *gorm.DB, user *entity.User, roles ...entity.Role) error {
	if len(roles) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(user).Association("Roles").Append(roles)
}

func (r *userRepository) ReplaceRoles(ctx context.Context, db *gorm.DB, user *entity.User, roles []entity.Role) error {
	if len(roles) == 0 {
		return db.WithContext(ctx).Model(user).Association("Roles").Clear()
	}
	return db.WithContext(ctx).Model(user).Association("Roles").Replace(roles)
}

// Delete removes the user's role links and then the user row. Profiles must be removed first.
func (r *userRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if err := db.WithContext(ctx).Model(&entity.User{ID: id}).Association("Roles").Clear(); err != nil {
		return 0, err
	}
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	return result.RowsAffected, result.Error
}
