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

type DiagnosisUsecase interface {
	CreateDiagnosis(ctx context.Context, req *dto.DiagnosisRequest) (*dto.DiagnosisResponse, error)
	GetDiagnosis(ctx context.Context, id int) (*dto.DiagnosisResponse, error)
	GetAllDiagnoses(ctx context.Context) (*dto.DiagnosisListResponse, error)
	UpdateDiagnosis(ctx context.Context, id int, req *dto.UpdateDiagnosisRequest) (*dto.DiagnosisResponse, error)
	DeleteDiagnosis(ctx context.Context, id int) error
}

type diagnosisUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	diagnosisRepo repository.DiagnosisRepository
}

func NewDiagnosisUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	diagnosisRepo repository.DiagnosisRepository,
) DiagnosisUsecase {
	return &diagnosisUsecase{
		db:            db,
		log:           log,
		diagnosisRepo: diagnosisRepo,
	}
}

func (u *diagnosisUsecase) CreateDiagnosis(ctx context.Context, req *dto.DiagnosisRequest) (*dto.DiagnosisResponse, error) {
	diagnosis := &entity.Diagnosis{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := u.diagnosisRepo.Create(ctx, u.db, diagnosis); err != nil {
		u.log.Warnf("Failed create diagnosis: %+v", err)
		return nil, err
	}

	return converter.DiagnosisToResponse(diagnosis), nil
}

func (u *diagnosisUsecase) GetDiagnosis(ctx context.Context, id int) (*dto.DiagnosisResponse, error) {
	diagnosis, err := u.diagnosisRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed find diagnosis by id: %+v", err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}

	return converter.DiagnosisToResponse(diagnosis), nil
}

func (u *diagnosisUsecase) GetAllDiagnoses(ctx context.Context) (*dto.DiagnosisListResponse, error) {
	diagnoses, err := u.diagnosisRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed find all diagnoses: %+v", err)
		return nil, err
	}

	responses := converter.DiagnosesToResponses(diagnoses)

	return &dto.DiagnosisListResponse{
		Diagnoses: responses,
		Total:     len(responses),
	}, nil
}

func (u *diagnosisUsecase) UpdateDiagnosis(ctx context.Context, id int, req *dto.UpdateDiagnosisRequest) (*dto.DiagnosisResponse, error) {
	diagnosis, err := u.diagnosisRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed find diagnosis by id: %+v", err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}

	setString(&diagnosis.Name, req.Name)
	setString(&diagnosis.Description, req.Description)

	if err := u.diagnosisRepo.Update(ctx, u.db, diagnosis); err != nil {
		u.log.Warnf("Failed update diagnosis: %+v", err)
		return nil, err
	}

	return converter.DiagnosisToResponse(diagnosis), nil
}

// DeleteDiagnosis detaches the diagnosis from every examination before removing it.
func (u *diagnosisUsecase) DeleteDiagnosis(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affectedRows, err := u.diagnosisRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed delete diagnosis: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrDiagnosisNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
