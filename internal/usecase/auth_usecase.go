package usecase

import (
	"context"

	"clinic-records/internal/converter"
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/domain/repository"
	"clinic-records/internal/service"
	"clinic-records/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgDoctorRegistered  = "Doctor registered successfully"
	msgPatientRegistered = "Patient registered successfully"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, caller entity.Caller) error
	GetCurrentUser(ctx context.Context, caller entity.Caller) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	registrar    *registrar
	jwtService   *jwt.JWTService
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	specializationRepo repository.SpecializationRepository,
	jwtService *jwt.JWTService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		registrar:    newRegistrar(log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo),
		jwtService:   jwtService,
		auditService: auditService,
	}
}

// Register creates a doctor or a patient account in a single transaction.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.UserType != entity.UserTypeDoctor && req.UserType != entity.UserTypePatient {
		return nil, ErrInvalidUserType
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var (
		user    *entity.User
		message string
	)
	switch req.UserType {
	case entity.UserTypeDoctor:
		profile, err := u.registrar.registerDoctor(ctx, tx, req.AccountFields, req.IsGP, req.SpecializationIDs)
		if err != nil {
			return nil, err
		}
		user, message = &profile.User, msgDoctorRegistered
	case entity.UserTypePatient:
		profile, err := u.registrar.registerPatient(ctx, tx, req.AccountFields, req.EGN, req.HasPaidInsurance, req.PersonalDoctorID)
		if err != nil {
			return nil, err
		}
		user, message = &profile.User, msgPatientRegistered
	}

	if err := u.auditService.LogEvent(ctx, tx, &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"username":  user.Username,
		"user_type": req.UserType,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.RegisterResponse{
		Message: message,
		User:    *converter.UserToResponse(user),
	}, nil
}

// Login accepts either the username or the email. Every credential failure returns the same error.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.userRepo.FindByUsernameOrEmail(ctx, u.db, req.UsernameOrEmail)
	if err != nil {
		u.log.Warnf("Failed to find user by username or email: %+v", err)
		return nil, err
	}
	if user == nil {
		u.recordLoginFailure(ctx, nil, req.UsernameOrEmail)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		u.recordLoginFailure(ctx, user, req.UsernameOrEmail)
		return nil, ErrInvalidCredentials
	}

	roles := user.RoleNames()
	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Username, roles)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, u.db, &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"token_id": tokenID,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		Authorities: roles,
		User:        *converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) recordLoginFailure(ctx context.Context, user *entity.User, login string) {
	var userID *uuid.UUID
	if user != nil {
		userID = &user.ID
	}
	if err := u.auditService.LogEvent(ctx, u.db, userID, entity.AuditActionUserLoginFailed, entity.JSON{
		"login": login,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}
}

// Logout is stateless: the token stays valid until it expires. The event is only recorded.
func (u *authUsecase) Logout(ctx context.Context, caller entity.Caller) error {
	if err := u.auditService.LogEvent(ctx, u.db, caller.UserID, entity.AuditActionUserLogout, entity.JSON{
		"username": caller.Username,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, caller entity.Caller) (*dto.UserResponse, error) {
	if caller.UserID == nil {
		return nil, ErrUserNotFound
	}

	user, err := u.userRepo.FindByID(ctx, u.db, *caller.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}
