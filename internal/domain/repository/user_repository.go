package repository

import (
	"context"

	"clinic-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unique user columns checked before writes.
const (
	UserColumnUsername = "username"
	UserColumnEmail    = "email"
	UserColumnPhone    = "phone"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByUsernameOrEmail(ctx context.Context, db *gorm.DB, login string) (*entity.User, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.User, error)
	ExistsBy(ctx context.Context, db *gorm.DB, column, value string, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	AppendRoles(ctx context.Context, db *gorm.DB, user *entity.User, roles ...entity.Role) error
	ReplaceRoles(ctx context.Context, db *gorm.DB, user *entity.User, roles []entity.Role) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
