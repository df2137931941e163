package usecase

import (
	"context"

	"clinic-records/internal/converter"
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/domain/repository"
	"clinic-records/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserUsecase interface {
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	UpdateUserRoles(ctx context.Context, caller entity.Caller, id uuid.UUID, req *dto.UpdateUserRolesRequest) (*dto.UserResponse, error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		auditService: auditService,
	}
}

func (u *userUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all users: %+v", err)
		return nil, err
	}

	responses := converter.UsersToResponses(users)

	return &dto.UserListResponse{
		Users: responses,
		Total: len(responses),
	}, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	email, phone := "", ""
	if req.Email != nil && *req.Email != user.Email {
		email = *req.Email
	}
	if req.Phone != nil && *req.Phone != user.Phone {
		phone = *req.Phone
	}
	if err := ensureUniqueUser(ctx, tx, u.log, u.userRepo, "", email, phone, &user.ID); err != nil {
		return nil, err
	}

	if req.BirthDate != nil {
		birthDate, err := parseDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		user.BirthDate = birthDate
	}
	if req.Gender != nil {
		user.Gender = entity.Gender(*req.Gender)
	}
	setString(&user.FirstName, req.FirstName)
	setString(&user.LastName, req.LastName)
	setString(&user.Email, req.Email)
	setString(&user.Phone, req.Phone)
	setString(&user.Address, req.Address)

	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrDuplicateEntry
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// UpdateUserRoles replaces the user's whole role set.
func (u *userUsecase) UpdateUserRoles(ctx context.Context, caller entity.Caller, id uuid.UUID, req *dto.UpdateUserRolesRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	roleIDs := uniqueInts(req.RoleIDs)
	roles, err := u.roleRepo.FindByIDs(ctx, tx, roleIDs)
	if err != nil {
		u.log.Warnf("Failed to find roles: %+v", err)
		return nil, err
	}
	if len(roles) != len(roleIDs) {
		return nil, ErrRoleNotFound
	}
	if err := checkRoleVariant(user, roles); err != nil {
		return nil, err
	}

	oldRoles := user.RoleNames()
	if err := u.userRepo.ReplaceRoles(ctx, tx, user, roles); err != nil {
		u.log.Warnf("Failed to replace user roles: %+v", err)
		return nil, err
	}
	user.Roles = roles

	if err := u.auditService.LogUpdate(ctx, tx, caller.UserID, entity.AuditActionUserRolesUpdate, "user", id.String(), oldRoles, user.RoleNames()); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// checkRoleVariant keeps the role set in line with the profile the user actually has: the
// matching variant role must stay and the other one must not be added.
func checkRoleVariant(user *entity.User, roles []entity.Role) error {
	next := entity.User{Roles: roles}

	switch {
	case user.DoctorProfile != nil:
		if !next.HasRole(entity.RoleDoctor) || next.HasRole(entity.RolePatient) {
			return ErrRoleVariantMismatch
		}
	case user.PatientProfile != nil:
		if !next.HasRole(entity.RolePatient) || next.HasRole(entity.RoleDoctor) {
			return ErrRoleVariantMismatch
		}
	default:
		if next.Kind() != "" {
			return ErrRoleVariantMismatch
		}
	}
	return nil
}
