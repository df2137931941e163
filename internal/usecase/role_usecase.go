package usecase

import (
	"context"

	"clinic-records/internal/converter"
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RoleUsecase interface {
	CreateRole(ctx context.Context, req *dto.RoleRequest) (*dto.RoleResponse, error)
	GetRole(ctx context.Context, id int) (*dto.RoleResponse, error)
	GetAllRoles(ctx context.Context) (*dto.RoleListResponse, error)
	UpdateRole(ctx context.Context, id int, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error)
	DeleteRole(ctx context.Context, id int) error
}

type roleUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	roleRepo repository.RoleRepository
}

func NewRoleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	roleRepo repository.RoleRepository,
) RoleUsecase {
	return &roleUsecase{
		db:       db,
		log:      log,
		roleRepo: roleRepo,
	}
}

func (u *roleUsecase) CreateRole(ctx context.Context, req *dto.RoleRequest) (*dto.RoleResponse, error) {
	existing, err := u.roleRepo.FindByName(ctx, u.db, req.RoleName)
	if err != nil {
		u.log.Warnf("Failed find role by name: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoleNameExists
	}

	role := &entity.Role{
		RoleName:    req.RoleName,
		Description: req.Description,
	}
	if err := u.roleRepo.Create(ctx, u.db, role); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrRoleNameExists
		}
		u.log.Warnf("Failed create role: %+v", err)
		return nil, err
	}

	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) GetRole(ctx context.Context, id int) (*dto.RoleResponse, error) {
	role, err := u.roleRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed find role by id: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) GetAllRoles(ctx context.Context) (*dto.RoleListResponse, error) {
	roles, err := u.roleRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed find all roles: %+v", err)
		return nil, err
	}

	responses := converter.RolesToResponses(roles)

	return &dto.RoleListResponse{
		Roles: responses,
		Total: len(responses),
	}, nil
}

func (u *roleUsecase) UpdateRole(ctx context.Context, id int, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := u.roleRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed find role by id: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	if req.RoleName != nil && *req.RoleName != role.RoleName {
		if isSystemRole(role.RoleName) {
			return nil, ErrSystemRole
		}
		existing, err := u.roleRepo.FindByName(ctx, u.db, *req.RoleName)
		if err != nil {
			u.log.Warnf("Failed find role by name: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrRoleNameExists
		}
		role.RoleName = *req.RoleName
	}
	setString(&role.Description, req.Description)

	if err := u.roleRepo.Update(ctx, u.db, role); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrRoleNameExists
		}
		u.log.Warnf("Failed update role: %+v", err)
		return nil, err
	}

	return converter.RoleToResponse(role), nil
}

// DeleteRole removes the role from every user before removing it. ROLE_DOCTOR and ROLE_PATIENT
// are never removed.
func (u *roleUsecase) DeleteRole(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed find role by id: %+v", err)
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}
	if isSystemRole(role.RoleName) {
		return ErrSystemRole
	}

	affectedRows, err := u.roleRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed delete role: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrRoleNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func isSystemRole(name string) bool {
	return name == entity.RoleDoctor || name == entity.RolePatient
}
