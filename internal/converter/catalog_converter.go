package converter

import (
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
)

func SpecializationToResponse(specialization *entity.Specialization) *dto.SpecializationResponse {
	if specialization == nil {
		return nil
	}
	return &dto.SpecializationResponse{
		ID:          specialization.ID,
		Name:        specialization.Name,
		Description: specialization.Description,
	}
}

func SpecializationsToResponses(specializations []entity.Specialization) []dto.SpecializationResponse {
	responses := make([]dto.SpecializationResponse, len(specializations))
	for i := range specializations {
		responses[i] = *SpecializationToResponse(&specializations[i])
	}
	return responses
}

func RoleToResponse(role *entity.Role) *dto.RoleResponse {
	if role == nil {
		return nil
	}
	return &dto.RoleResponse{
		ID:          role.ID,
		RoleName:    role.RoleName,
		Description: role.Description,
	}
}

func RolesToResponses(roles []entity.Role) []dto.RoleResponse {
	responses := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		responses[i] = *RoleToResponse(&roles[i])
	}
	return responses
}
