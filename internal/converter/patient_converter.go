package converter

import (
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
)

// PatientProfileToResponse expects User and PersonalDoctor.User to be preloaded.
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:               profile.UserID,
		FirstName:        profile.User.FirstName,
		LastName:         profile.User.LastName,
		FullName:         profile.User.FullName(),
		EGN:              profile.EGN,
		HasPaidInsurance: profile.HasPaidInsurance,
		Email:            profile.User.Email,
		Phone:            profile.User.Phone,
	}
	if profile.PersonalDoctor != nil {
		summary := DoctorToSummary(profile.PersonalDoctor)
		response.PersonalDoctor = &summary
	}
	return response
}

func PatientProfilesToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i := range profiles {
		responses[i] = *PatientProfileToResponse(&profiles[i])
	}
	return responses
}

func PatientToSummary(profile *entity.PatientProfile) dto.PatientSummary {
	if profile == nil {
		return dto.PatientSummary{}
	}
	return dto.PatientSummary{
		ID:       profile.UserID,
		EGN:      profile.EGN,
		FullName: profile.User.FullName(),
	}
}
