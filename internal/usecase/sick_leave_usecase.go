package usecase

import (
	"context"
	"strconv"

	"clinic-records/internal/converter"
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/domain/repository"
	"clinic-records/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SickLeaveUsecase interface {
	CreateSickLeave(ctx context.Context, examinationID int, req *dto.CreateSickLeaveRequest) (*dto.SickLeaveResponse, error)
	GetSickLeave(ctx context.Context, id int) (*dto.SickLeaveResponse, error)
	GetAllSickLeaves(ctx context.Context) (*dto.SickLeaveListResponse, error)
	UpdateSickLeave(ctx context.Context, id int, req *dto.UpdateSickLeaveRequest) (*dto.SickLeaveResponse, error)
	DeleteSickLeave(ctx context.Context, caller entity.Caller, id int) error
}

type sickLeaveUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	sickLeaveRepo   repository.SickLeaveRepository
	examinationRepo repository.ExaminationRepository
	auditService    service.AuditService
}

func NewSickLeaveUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sickLeaveRepo repository.SickLeaveRepository,
	examinationRepo repository.ExaminationRepository,
	auditService service.AuditService,
) SickLeaveUsecase {
	return &sickLeaveUsecase{
		db:              db,
		log:             log,
		sickLeaveRepo:   sickLeaveRepo,
		examinationRepo: examinationRepo,
		auditService:    auditService,
	}
}

// CreateSickLeave issues the one sick leave an examination may carry.
func (u *sickLeaveUsecase) CreateSickLeave(ctx context.Context, examinationID int, req *dto.CreateSickLeaveRequest) (*dto.SickLeaveResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	examination, err := u.examinationRepo.FindByID(ctx, tx, examinationID)
	if err != nil {
		u.log.Warnf("Failed find examination by id: %+v", err)
		return nil, err
	}
	if examination == nil {
		return nil, ErrExaminationNotFound
	}

	existing, err := u.sickLeaveRepo.FindByExaminationID(ctx, tx, examinationID)
	if err != nil {
		u.log.Warnf("Failed find sick leave by examination: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSickLeaveExists
	}

	sickLeave := &entity.SickLeave{
		StartDate:     startDate,
		EndDate:       endDate,
		Note:          req.Note,
		ExaminationID: examination.ID,
	}
	if err := u.sickLeaveRepo.Create(ctx, tx, sickLeave); err != nil {
		if isDuplicateKeyError(err, "examination") {
			return nil, ErrSickLeaveExists
		}
		u.log.Warnf("Failed create sick leave: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SickLeaveToResponse(sickLeave), nil
}

func (u *sickLeaveUsecase) GetSickLeave(ctx context.Context, id int) (*dto.SickLeaveResponse, error) {
	sickLeave, err := u.sickLeaveRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed find sick leave by id: %+v", err)
		return nil, err
	}
	if sickLeave == nil {
		return nil, ErrSickLeaveNotFound
	}

	return converter.SickLeaveToResponse(sickLeave), nil
}

func (u *sickLeaveUsecase) GetAllSickLeaves(ctx context.Context) (*dto.SickLeaveListResponse, error) {
	sickLeaves, err := u.sickLeaveRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed find all sick leaves: %+v", err)
		return nil, err
	}

	responses := converter.SickLeavesToResponses(sickLeaves)

	return &dto.SickLeaveListResponse{
		SickLeaves: responses,
		Total:      len(responses),
	}, nil
}

func (u *sickLeaveUsecase) UpdateSickLeave(ctx context.Context, id int, req *dto.UpdateSickLeaveRequest) (*dto.SickLeaveResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	sickLeave, err := u.sickLeaveRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed find sick leave by id: %+v", err)
		return nil, err
	}
	if sickLeave == nil {
		return nil, ErrSickLeaveNotFound
	}

	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		sickLeave.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		sickLeave.EndDate = endDate
	}
	if sickLeave.EndDate.Before(sickLeave.StartDate) {
		return nil, ErrInvalidDateRange
	}
	setString(&sickLeave.Note, req.Note)

	if err := u.sickLeaveRepo.Update(ctx, tx, sickLeave); err != nil {
		u.log.Warnf("Failed update sick leave: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SickLeaveToResponse(sickLeave), nil
}

func (u *sickLeaveUsecase) DeleteSickLeave(ctx context.Context, caller entity.Caller, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	sickLeave, err := u.sickLeaveRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed find sick leave by id: %+v", err)
		return err
	}
	if sickLeave == nil {
		return ErrSickLeaveNotFound
	}

	affectedRows, err := u.sickLeaveRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed delete sick leave: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrSickLeaveNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, caller.UserID, entity.AuditActionSickLeaveDelete, "sick_leave", strconv.Itoa(id), converter.SickLeaveToResponse(sickLeave)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
