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

type DoctorProfileUsecase interface {
	CreateDoctor(ctx context.Context, caller entity.Caller, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetGPs(ctx context.Context) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, caller entity.Caller, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, caller entity.Caller, doctorID uuid.UUID) error
}

type doctorProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	examinationRepo    repository.ExaminationRepository
	registrar          *registrar
	auditService       service.AuditService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	specializationRepo repository.SpecializationRepository,
	examinationRepo repository.ExaminationRepository,
	auditService service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		examinationRepo:    examinationRepo,
		registrar:          newRegistrar(log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo),
		auditService:       auditService,
	}
}

func (u *doctorProfileUsecase) CreateDoctor(ctx context.Context, caller entity.Caller, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.registrar.registerDoctor(ctx, tx, req.AccountFields, req.IsGP, req.SpecializationIDs)
	if err != nil {
		return nil, err
	}

	response := converter.DoctorProfileToResponse(profile)
	if err := u.auditService.LogCreate(ctx, tx, caller.UserID, entity.AuditActionDoctorCreate, "doctor_profile", profile.UserID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all doctor profiles: %+v", err)
		return nil, err
	}

	doctors := converter.DoctorProfilesToResponses(profiles)

	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}, nil
}

func (u *doctorProfileUsecase) GetGPs(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindGPs(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find general practitioners: %+v", err)
		return nil, err
	}

	doctors := converter.DoctorProfilesToResponses(profiles)

	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}, nil
}

// UpdateDoctor applies only the fields present in req.
func (u *doctorProfileUsecase) UpdateDoctor(ctx context.Context, caller entity.Caller, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := converter.DoctorProfileToResponse(profile)

	email, phone := "", ""
	if req.Email != nil && *req.Email != profile.User.Email {
		email = *req.Email
	}
	if req.Phone != nil && *req.Phone != profile.User.Phone {
		phone = *req.Phone
	}
	if err := u.registrar.ensureUnique(ctx, tx, "", email, phone, &profile.UserID); err != nil {
		return nil, err
	}

	setString(&profile.User.FirstName, req.FirstName)
	setString(&profile.User.LastName, req.LastName)
	setString(&profile.User.Email, req.Email)
	setString(&profile.User.Phone, req.Phone)
	setString(&profile.User.Address, req.Address)
	if req.IsGP != nil {
		profile.IsGP = *req.IsGP
	}

	if req.SpecializationIDs != nil || req.IsGP != nil {
		ids := currentSpecializationIDs(profile)
		if req.SpecializationIDs != nil {
			ids = *req.SpecializationIDs
		}
		specializations, err := u.registrar.resolveSpecializations(ctx, tx, ids, profile.IsGP)
		if err != nil {
			return nil, err
		}
		if err := u.doctorProfileRepo.ReplaceSpecializations(ctx, tx, profile, specializations); err != nil {
			u.log.Warnf("Failed to replace specializations: %+v", err)
			return nil, err
		}
	}

	if err := u.userRepo.Update(ctx, tx, &profile.User); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrDuplicateEntry
		}
		u.log.Warnf("Failed to update doctor user: %+v", err)
		return nil, err
	}
	if err := u.doctorProfileRepo.Update(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	newValue := converter.DoctorProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, caller.UserID, entity.AuditActionDoctorUpdate, "doctor_profile", doctorID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// DeleteDoctor refuses to remove a doctor who is still someone's personal doctor or who has
// examinations on record.
func (u *doctorProfileUsecase) DeleteDoctor(ctx context.Context, caller entity.Caller, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}

	patients, err := u.patientProfileRepo.CountByPersonalDoctor(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to count doctor patients: %+v", err)
		return err
	}
	if patients > 0 {
		return ErrDoctorHasPatients
	}

	examinations, err := u.examinationRepo.CountByDoctorID(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to count doctor examinations: %+v", err)
		return err
	}
	if examinations > 0 {
		return ErrDoctorHasExaminations
	}

	oldValue := converter.DoctorProfileToResponse(profile)

	if _, err := u.doctorProfileRepo.Delete(ctx, tx, doctorID); err != nil {
		u.log.Warnf("Failed delete doctor profile: %+v", err)
		return err
	}
	affectedRows, err := u.userRepo.Delete(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed delete doctor: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrDoctorNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, caller.UserID, entity.AuditActionDoctorDelete, "doctor_profile", doctorID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func currentSpecializationIDs(profile *entity.DoctorProfile) []int {
	ids := make([]int, 0, len(profile.Specializations))
	for _, s := range profile.Specializations {
		ids = append(ids, s.ID)
	}
	return ids
}
