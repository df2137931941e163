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

type SpecializationUsecase interface {
	CreateSpecialization(ctx context.Context, req *dto.SpecializationRequest) (*dto.SpecializationResponse, error)
	GetSpecialization(ctx context.Context, id int) (*dto.SpecializationResponse, error)
	GetAllSpecializations(ctx context.Context) (*dto.SpecializationListResponse, error)
	GetSpecializationsWithoutGP(ctx context.Context) (*dto.SpecializationListResponse, error)
	UpdateSpecialization(ctx context.Context, id int, req *dto.UpdateSpecializationRequest) (*dto.SpecializationResponse, error)
	DeleteSpecialization(ctx context.Context, id int) error
}

type specializationUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	specializationRepo repository.SpecializationRepository
}

func NewSpecializationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specializationRepo repository.SpecializationRepository,
) SpecializationUsecase {
	return &specializationUsecase{
		db:                 db,
		log:                log,
		specializationRepo: specializationRepo,
	}
}

func (u *specializationUsecase) CreateSpecialization(ctx context.Context, req *dto.SpecializationRequest) (*dto.SpecializationResponse, error) {
	existing, err := u.specializationRepo.FindByName(ctx, u.db, req.Name)
	if err != nil {
		u.log.Warnf("Failed find specialization by name: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSpecializationNameExists
	}

	specialization := &entity.Specialization{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := u.specializationRepo.Create(ctx, u.db, specialization); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrSpecializationNameExists
		}
		u.log.Warnf("Failed create specialization: %+v", err)
		return nil, err
	}

	return converter.SpecializationToResponse(specialization), nil
}

func (u *specializationUsecase) GetSpecialization(ctx context.Context, id int) (*dto.SpecializationResponse, error) {
	specialization, err := u.specializationRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed find specialization by id: %+v", err)
		return nil, err
	}
	if specialization == nil {
		return nil, ErrSpecializationNotFound
	}

	return converter.SpecializationToResponse(specialization), nil
}

func (u *specializationUsecase) GetAllSpecializations(ctx context.Context) (*dto.SpecializationListResponse, error) {
	specializations, err := u.specializationRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed find all specializations: %+v", err)
		return nil, err
	}

	responses := converter.SpecializationsToResponses(specializations)

	return &dto.SpecializationListResponse{
		Specializations: responses,
		Total:           len(responses),
	}, nil
}

// GetSpecializationsWithoutGP lists what a doctor can pick by hand. GP comes from the is_gp flag.
func (u *specializationUsecase) GetSpecializationsWithoutGP(ctx context.Context) (*dto.SpecializationListResponse, error) {
	specializations, err := u.specializationRepo.FindAllExcept(ctx, u.db, entity.SpecializationGP)
	if err != nil {
		u.log.Warnf("Failed find specializations: %+v", err)
		return nil, err
	}

	responses := converter.SpecializationsToResponses(specializations)

	return &dto.SpecializationListResponse{
		Specializations: responses,
		Total:           len(responses),
	}, nil
}

func (u *specializationUsecase) UpdateSpecialization(ctx context.Context, id int, req *dto.UpdateSpecializationRequest) (*dto.SpecializationResponse, error) {
	specialization, err := u.specializationRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed find specialization by id: %+v", err)
		return nil, err
	}
	if specialization == nil {
		return nil, ErrSpecializationNotFound
	}

	if req.Name != nil && *req.Name != specialization.Name {
		if specialization.Name == entity.SpecializationGP {
			return nil, ErrSystemSpecialization
		}
		existing, err := u.specializationRepo.FindByName(ctx, u.db, *req.Name)
		if err != nil {
			u.log.Warnf("Failed find specialization by name: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrSpecializationNameExists
		}
		specialization.Name = *req.Name
	}
	setString(&specialization.Description, req.Description)

	if err := u.specializationRepo.Update(ctx, u.db, specialization); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrSpecializationNameExists
		}
		u.log.Warnf("Failed update specialization: %+v", err)
		return nil, err
	}

	return converter.SpecializationToResponse(specialization), nil
}

// DeleteSpecialization detaches the specialization from every doctor before removing it.
func (u *specializationUsecase) DeleteSpecialization(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialization, err := u.specializationRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed find specialization by id: %+v", err)
		return err
	}
	if specialization == nil {
		return ErrSpecializationNotFound
	}
	if specialization.Name == entity.SpecializationGP {
		return ErrSystemSpecialization
	}

	affectedRows, err := u.specializationRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed delete specialization: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrSpecializationNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
