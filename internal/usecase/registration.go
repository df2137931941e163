package usecase

import (
	"context"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/domain/repository"
	"clinic-records/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// registrar builds doctor and patient accounts inside a caller-owned transaction. It is shared
// by self-registration and by the doctor and patient management endpoints. All reference and
// format checks run before the first insert.
type registrar struct {
	log                *logrus.Logger
	userRepo           repository.UserRepository
	roleRepo           repository.RoleRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	specializationRepo repository.SpecializationRepository
}

func newRegistrar(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	specializationRepo repository.SpecializationRepository,
) *registrar {
	return &registrar{
		log:                log,
		userRepo:           userRepo,
		roleRepo:           roleRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		specializationRepo: specializationRepo,
	}
}

func (r *registrar) registerDoctor(ctx context.Context, tx *gorm.DB, fields dto.AccountFields, isGP bool, specializationIDs []int) (*entity.DoctorProfile, error) {
	specializations, err := r.resolveSpecializations(ctx, tx, specializationIDs, isGP)
	if err != nil {
		return nil, err
	}

	account, err := r.prepareAccount(ctx, tx, fields, entity.RoleDoctor)
	if err != nil {
		return nil, err
	}

	identity, err := r.nextDoctorIdentity(ctx, tx)
	if err != nil {
		return nil, err
	}

	user, err := r.createAccount(ctx, tx, account)
	if err != nil {
		return nil, err
	}

	profile := &entity.DoctorProfile{
		UserID:         user.ID,
		DoctorIdentity: identity,
		IsGP:           isGP,
	}
	if err := r.doctorProfileRepo.Create(ctx, tx, profile); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrDuplicateEntry
		}
		r.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := r.doctorProfileRepo.ReplaceSpecializations(ctx, tx, profile, specializations); err != nil {
		r.log.Warnf("Failed to attach specializations: %+v", err)
		return nil, err
	}

	profile.User = *user
	return profile, nil
}

func (r *registrar) registerPatient(ctx context.Context, tx *gorm.DB, fields dto.AccountFields, egn string, hasPaidInsurance bool, personalDoctorID uuid.UUID) (*entity.PatientProfile, error) {
	if !validator.IsValidEGN(egn) {
		return nil, ErrInvalidEGN
	}

	existing, err := r.patientProfileRepo.FindByEGN(ctx, tx, egn)
	if err != nil {
		r.log.Warnf("Failed to find patient by EGN: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEGNExists
	}

	if personalDoctorID == uuid.Nil {
		return nil, ErrPersonalDoctorNotFound
	}
	doctor, err := r.doctorProfileRepo.FindByUserID(ctx, tx, personalDoctorID)
	if err != nil {
		r.log.Warnf("Failed to find personal doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrPersonalDoctorNotFound
	}

	account, err := r.prepareAccount(ctx, tx, fields, entity.RolePatient)
	if err != nil {
		return nil, err
	}

	user, err := r.createAccount(ctx, tx, account)
	if err != nil {
		return nil, err
	}

	profile := &entity.PatientProfile{
		UserID:           user.ID,
		EGN:              egn,
		HasPaidInsurance: hasPaidInsurance,
		PersonalDoctorID: doctor.UserID,
	}
	if err := r.patientProfileRepo.Create(ctx, tx, profile); err != nil {
		if isDuplicateKeyError(err, "egn") {
			return nil, ErrEGNExists
		}
		if isForeignKeyError(err, "personal_doctor") {
			return nil, ErrPersonalDoctorNotFound
		}
		r.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	profile.User = *user
	profile.PersonalDoctor = doctor
	return profile, nil
}

// pendingAccount is a validated user row plus the role it will receive.
type pendingAccount struct {
	user *entity.User
	role entity.Role
}

func (r *registrar) prepareAccount(ctx context.Context, tx *gorm.DB, fields dto.AccountFields, roleName string) (*pendingAccount, error) {
	birthDate, err := parseDate(fields.BirthDate)
	if err != nil {
		return nil, err
	}

	if err := r.ensureUnique(ctx, tx, fields.Username, fields.Email, fields.Phone, nil); err != nil {
		return nil, err
	}

	role, err := r.roleRepo.FindByName(ctx, tx, roleName)
	if err != nil {
		r.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotConfigured
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(fields.Password), bcrypt.DefaultCost)
	if err != nil {
		r.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	return &pendingAccount{
		user: &entity.User{
			FirstName: fields.FirstName,
			LastName:  fields.LastName,
			BirthDate: birthDate,
			Username:  fields.Username,
			Email:     fields.Email,
			Password:  string(hashedPassword),
			Phone:     fields.Phone,
			Address:   fields.Address,
			Gender:    entity.Gender(fields.Gender),
		},
		role: *role,
	}, nil
}

func (r *registrar) createAccount(ctx context.Context, tx *gorm.DB, account *pendingAccount) (*entity.User, error) {
	user := account.user
	if err := r.userRepo.Create(ctx, tx, user); err != nil {
		switch {
		case isDuplicateKeyError(err, "username"):
			return nil, ErrUsernameExists
		case isDuplicateKeyError(err, "email"):
			return nil, ErrEmailExists
		case isDuplicateKeyError(err, "phone"):
			return nil, ErrPhoneExists
		case isDuplicateKeyError(err, ""):
			return nil, ErrDuplicateEntry
		}
		r.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := r.userRepo.AppendRoles(ctx, tx, user, account.role); err != nil {
		r.log.Warnf("Failed to assign role: %+v", err)
		return nil, err
	}
	user.Roles = []entity.Role{account.role}

	return user, nil
}

func (r *registrar) ensureUnique(ctx context.Context, tx *gorm.DB, username, email, phone string, excludeID *uuid.UUID) error {
	return ensureUniqueUser(ctx, tx, r.log, r.userRepo, username, email, phone, excludeID)
}

// ensureUniqueUser rejects values already held by another user. Empty values are skipped.
func ensureUniqueUser(ctx context.Context, tx *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, username, email, phone string, excludeID *uuid.UUID) error {
	checks := []struct {
		column string
		value  string
		err    error
	}{
		{repository.UserColumnUsername, username, ErrUsernameExists},
		{repository.UserColumnEmail, email, ErrEmailExists},
		{repository.UserColumnPhone, phone, ErrPhoneExists},
	}

	for _, check := range checks {
		if check.value == "" {
			continue
		}
		exists, err := userRepo.ExistsBy(ctx, tx, check.column, check.value, excludeID)
		if err != nil {
			log.Warnf("Failed to check %s uniqueness: %+v", check.column, err)
			return err
		}
		if exists {
			return check.err
		}
	}
	return nil
}

// resolveSpecializations loads every requested specialization and adds GP when isGP is set.
func (r *registrar) resolveSpecializations(ctx context.Context, tx *gorm.DB, ids []int, isGP bool) ([]entity.Specialization, error) {
	ids = uniqueInts(ids)

	specializations, err := r.specializationRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		r.log.Warnf("Failed to find specializations: %+v", err)
		return nil, err
	}
	if len(specializations) != len(ids) {
		return nil, ErrSpecializationNotFound
	}

	if !isGP {
		return specializations, nil
	}
	for _, s := range specializations {
		if s.Name == entity.SpecializationGP {
			return specializations, nil
		}
	}

	gp, err := r.specializationRepo.FindByName(ctx, tx, entity.SpecializationGP)
	if err != nil {
		r.log.Warnf("Failed to find GP specialization: %+v", err)
		return nil, err
	}
	if gp == nil {
		return nil, ErrGPSpecializationMissing
	}
	return append(specializations, *gp), nil
}

// nextDoctorIdentity returns DOC%03d of the doctor count plus one, skipping codes still in use.
func (r *registrar) nextDoctorIdentity(ctx context.Context, tx *gorm.DB) (string, error) {
	count, err := r.doctorProfileRepo.Count(ctx, tx)
	if err != nil {
		r.log.Warnf("Failed to count doctors: %+v", err)
		return "", err
	}

	for seq := count + 1; ; seq++ {
		identity := entity.DoctorIdentityFor(seq)
		taken, err := r.doctorProfileRepo.ExistsByIdentity(ctx, tx, identity)
		if err != nil {
			r.log.Warnf("Failed to check doctor identity: %+v", err)
			return "", err
		}
		if !taken {
			return identity, nil
		}
	}
}
