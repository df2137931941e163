package usecase

import (
	"context"

	"clinic-records/internal/converter"
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/domain/repository"
	"clinic-records/internal/service"
	"clinic-records/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientProfileUsecase interface {
	CreatePatient(ctx context.Context, caller entity.Caller, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	GetPatientByEGN(ctx context.Context, egn string) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatientsByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, caller entity.Caller, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, caller entity.Caller, patientID uuid.UUID) error
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	examinationRepo    repository.ExaminationRepository
	sickLeaveRepo      repository.SickLeaveRepository
	registrar          *registrar
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	specializationRepo repository.SpecializationRepository,
	examinationRepo repository.ExaminationRepository,
	sickLeaveRepo repository.SickLeaveRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		examinationRepo:    examinationRepo,
		sickLeaveRepo:      sickLeaveRepo,
		registrar:          newRegistrar(log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo),
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) CreatePatient(ctx context.Context, caller entity.Caller, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.registrar.registerPatient(ctx, tx, req.AccountFields, req.EGN, req.HasPaidInsurance, req.PersonalDoctorID)
	if err != nil {
		return nil, err
	}

	response := converter.PatientProfileToResponse(profile)
	if err := u.auditService.LogCreate(ctx, tx, caller.UserID, entity.AuditActionPatientCreate, "patient_profile", profile.UserID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *patientProfileUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.patientProfileRepo.FindByUserID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientProfileUsecase) GetPatientByEGN(ctx context.Context, egn string) (*dto.PatientResponse, error) {
	if !validator.IsValidEGN(egn) {
		return nil, ErrInvalidEGN
	}

	profile, err := u.patientProfileRepo.FindByEGN(ctx, u.db, egn)
	if err != nil {
		u.log.Warnf("Failed to find patient by EGN: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientProfileUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	profiles, err := u.patientProfileRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all patient profiles: %+v", err)
		return nil, err
	}

	patients := converter.PatientProfilesToResponses(profiles)

	return &dto.PatientListResponse{
		Patients: patients,
		Total:    len(patients),
	}, nil
}

func (u *patientProfileUsecase) GetPatientsByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.PatientListResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	profiles, err := u.patientProfileRepo.FindByPersonalDoctor(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find patients by personal doctor: %+v", err)
		return nil, err
	}

	patients := converter.PatientProfilesToResponses(profiles)

	return &dto.PatientListResponse{
		Patients: patients,
		Total:    len(patients),
	}, nil
}

func (u *patientProfileUsecase) UpdatePatient(ctx context.Context, caller entity.Caller, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	oldValue := converter.PatientProfileToResponse(profile)

	if req.EGN != nil && *req.EGN != profile.EGN {
		if !validator.IsValidEGN(*req.EGN) {
			return nil, ErrInvalidEGN
		}
		existing, err := u.patientProfileRepo.FindByEGN(ctx, tx, *req.EGN)
		if err != nil {
			u.log.Warnf("Failed to find patient by EGN: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrEGNExists
		}
		profile.EGN = *req.EGN
	}

	if req.PersonalDoctorID != nil && *req.PersonalDoctorID != profile.PersonalDoctorID {
		doctor, err := u.doctorProfileRepo.FindByUserID(ctx, tx, *req.PersonalDoctorID)
		if err != nil {
			u.log.Warnf("Failed to find personal doctor: %+v", err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrPersonalDoctorNotFound
		}
		profile.PersonalDoctorID = doctor.UserID
		profile.PersonalDoctor = doctor
	}

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
	if req.HasPaidInsurance != nil {
		profile.HasPaidInsurance = *req.HasPaidInsurance
	}

	if err := u.userRepo.Update(ctx, tx, &profile.User); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrDuplicateEntry
		}
		u.log.Warnf("Failed to update patient user: %+v", err)
		return nil, err
	}
	if err := u.patientProfileRepo.Update(ctx, tx, profile); err != nil {
		if isDuplicateKeyError(err, "egn") {
			return nil, ErrEGNExists
		}
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	newValue := converter.PatientProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, caller.UserID, entity.AuditActionPatientUpdate, "patient_profile", patientID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// DeletePatient removes the patient together with every examination, diagnosis link and sick
// leave recorded for them, then the user account.
func (u *patientProfileUsecase) DeletePatient(ctx context.Context, caller entity.Caller, patientID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrPatientNotFound
	}

	oldValue := converter.PatientProfileToResponse(profile)

	examinationIDs, err := u.examinationRepo.FindIDsByPatientID(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient examinations: %+v", err)
		return err
	}
	if _, err := u.sickLeaveRepo.DeleteByExaminationIDs(ctx, tx, examinationIDs); err != nil {
		u.log.Warnf("Failed delete patient sick leaves: %+v", err)
		return err
	}
	if _, err := u.examinationRepo.DeleteByIDs(ctx, tx, examinationIDs); err != nil {
		u.log.Warnf("Failed delete patient examinations: %+v", err)
		return err
	}

	if _, err := u.patientProfileRepo.Delete(ctx, tx, patientID); err != nil {
		u.log.Warnf("Failed delete patient profile: %+v", err)
		return err
	}
	affectedRows, err := u.userRepo.Delete(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed delete patient: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, caller.UserID, entity.AuditActionPatientDelete, "patient_profile", patientID.String(), entity.JSON{
		"patient":         oldValue,
		"examination_ids": examinationIDs,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
