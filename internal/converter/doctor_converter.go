package converter

import (
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              profile.UserID,
		DoctorIdentity:  profile.DoctorIdentity,
		FirstName:       profile.User.FirstName,
		LastName:        profile.User.LastName,
		FullName:        profile.User.FullName(),
		Email:           profile.User.Email,
		Phone:           profile.User.Phone,
		IsGP:            profile.IsGP,
		Specializations: SpecializationsToResponses(profile.Specializations),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}

func DoctorToSummary(profile *entity.DoctorProfile) dto.DoctorSummary {
	if profile == nil {
		return dto.DoctorSummary{}
	}
	return dto.DoctorSummary{
		ID:             profile.UserID,
		DoctorIdentity: profile.DoctorIdentity,
		FullName:       profile.User.FullName(),
	}
}
