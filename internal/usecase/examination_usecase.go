package usecase

import (
	"context"
	"strconv"

	"clinic-records/internal/converter"
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/domain/repository"
	"clinic-records/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ExaminationUsecase interface {
	CreateExamination(ctx context.Context, doctorID, patientID uuid.UUID, req *dto.CreateExaminationRequest) (*dto.ExaminationResponse, error)
	GetExamination(ctx context.Context, id int) (*dto.ExaminationResponse, error)
	GetAllExaminations(ctx context.Context) (*dto.ExaminationListResponse, error)
	GetExaminationsByPatient(ctx context.Context, patientID uuid.UUID) (*dto.ExaminationListResponse, error)
	GetExaminationsByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ExaminationListResponse, error)
	UpdateExamination(ctx context.Context, id int, req *dto.UpdateExaminationRequest) (*dto.ExaminationResponse, error)
	DeleteExamination(ctx context.Context, caller entity.Caller, id int) error
}

type examinationUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	examinationRepo    repository.ExaminationRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	diagnosisRepo      repository.DiagnosisRepository
	sickLeaveRepo      repository.SickLeaveRepository
	auditService       service.AuditService
}

func NewExaminationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	examinationRepo repository.ExaminationRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	diagnosisRepo repository.DiagnosisRepository,
	sickLeaveRepo repository.SickLeaveRepository,
	auditService service.AuditService,
) ExaminationUsecase {
	return &examinationUsecase{
		db:                 db,
		log:                log,
		examinationRepo:    examinationRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		diagnosisRepo:      diagnosisRepo,
		sickLeaveRepo:      sickLeaveRepo,
		auditService:       auditService,
	}
}

func (u *examinationUsecase) CreateExamination(ctx context.Context, doctorID, patientID uuid.UUID, req *dto.CreateExaminationRequest) (*dto.ExaminationResponse, error) {
	examinationDate, err := parseDate(req.ExaminationDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.patientProfileRepo.FindByUserID(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	diagnoses, err := u.resolveDiagnoses(ctx, tx, req.DiagnosisIDs)
	if err != nil {
		return nil, err
	}

	examination := &entity.Examination{
		ExaminationDate: examinationDate,
		Treatment:       req.Treatment,
		DoctorID:        doctor.UserID,
		PatientID:       patient.UserID,
	}
	if err := u.examinationRepo.Create(ctx, tx, examination); err != nil {
		u.log.Warnf("Failed create examination: %+v", err)
		return nil, err
	}
	if err := u.examinationRepo.ReplaceDiagnoses(ctx, tx, examination, diagnoses); err != nil {
		u.log.Warnf("Failed to attach diagnoses: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	examination.Doctor = doctor
	examination.Patient = patient
	return converter.ExaminationToResponse(examination), nil
}

func (u *examinationUsecase) GetExamination(ctx context.Context, id int) (*dto.ExaminationResponse, error) {
	examination, err := u.examinationRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed find examination by id: %+v", err)
		return nil, err
	}
	if examination == nil {
		return nil, ErrExaminationNotFound
	}

	return converter.ExaminationToResponse(examination), nil
}

func (u *examinationUsecase) GetAllExaminations(ctx context.Context) (*dto.ExaminationListResponse, error) {
	examinations, err := u.examinationRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed find all examinations: %+v", err)
		return nil, err
	}

	return examinationList(examinations), nil
}

func (u *examinationUsecase) GetExaminationsByPatient(ctx context.Context, patientID uuid.UUID) (*dto.ExaminationListResponse, error) {
	patient, err := u.patientProfileRepo.FindByUserID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	examinations, err := u.examinationRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed find examinations by patient: %+v", err)
		return nil, err
	}

	return examinationList(examinations), nil
}

func (u *examinationUsecase) GetExaminationsByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ExaminationListResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	examinations, err := u.examinationRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed find examinations by doctor: %+v", err)
		return nil, err
	}

	return examinationList(examinations), nil
}

func (u *examinationUsecase) UpdateExamination(ctx context.Context, id int, req *dto.UpdateExaminationRequest) (*dto.ExaminationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	examination, err := u.examinationRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed find examination by id: %+v", err)
		return nil, err
	}
	if examination == nil {
		return nil, ErrExaminationNotFound
	}

	if req.ExaminationDate != nil {
		examinationDate, err := parseDate(*req.ExaminationDate)
		if err != nil {
			return nil, err
		}
		examination.ExaminationDate = examinationDate
	}
	setString(&examination.Treatment, req.Treatment)

	if err := u.examinationRepo.Update(ctx, tx, examination); err != nil {
		u.log.Warnf("Failed update examination: %+v", err)
		return nil, err
	}

	if req.DiagnosisIDs != nil {
		diagnoses, err := u.resolveDiagnoses(ctx, tx, *req.DiagnosisIDs)
		if err != nil {
			return nil, err
		}
		if err := u.examinationRepo.ReplaceDiagnoses(ctx, tx, examination, diagnoses); err != nil {
			u.log.Warnf("Failed to replace diagnoses: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ExaminationToResponse(examination), nil
}

// DeleteExamination also removes the examination's sick leave and diagnosis links.
func (u *examinationUsecase) DeleteExamination(ctx context.Context, caller entity.Caller, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	examination, err := u.examinationRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed find examination by id: %+v", err)
		return err
	}
	if examination == nil {
		return ErrExaminationNotFound
	}

	oldValue := converter.ExaminationToResponse(examination)

	ids := []int{examination.ID}
	if _, err := u.sickLeaveRepo.DeleteByExaminationIDs(ctx, tx, ids); err != nil {
		u.log.Warnf("Failed delete examination sick leave: %+v", err)
		return err
	}
	affectedRows, err := u.examinationRepo.DeleteByIDs(ctx, tx, ids)
	if err != nil {
		u.log.Warnf("Failed delete examination: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrExaminationNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, caller.UserID, entity.AuditActionExaminationDelete, "examination", strconv.Itoa(examination.ID), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// resolveDiagnoses loads every requested diagnosis. Duplicated ids are collapsed.
func (u *examinationUsecase) resolveDiagnoses(ctx context.Context, tx *gorm.DB, ids []int) ([]entity.Diagnosis, error) {
	ids = uniqueInts(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	diagnoses, err := u.diagnosisRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		u.log.Warnf("Failed to find diagnoses: %+v", err)
		return nil, err
	}
	if len(diagnoses) != len(ids) {
		return nil, ErrDiagnosisNotFound
	}
	return diagnoses, nil
}

func examinationList(examinations []entity.Examination) *dto.ExaminationListResponse {
	responses := converter.ExaminationsToResponses(examinations)
	return &dto.ExaminationListResponse{
		Examinations: responses,
		Total:        len(responses),
	}
}
