package converter

import (
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
)

func ExaminationToResponse(examination *entity.Examination) *dto.ExaminationResponse {
	if examination == nil {
		return nil
	}

	response := &dto.ExaminationResponse{
		ID:              examination.ID,
		ExaminationDate: examination.ExaminationDate.Format(DateLayout),
		Treatment:       examination.Treatment,
		Doctor:          DoctorToSummary(examination.Doctor),
		Patient:         PatientToSummary(examination.Patient),
		Diagnoses:       DiagnosesToResponses(examination.Diagnoses),
		SickLeave:       SickLeaveToResponse(examination.SickLeave),
	}
	if examination.Doctor == nil {
		response.Doctor.ID = examination.DoctorID
	}
	if examination.Patient == nil {
		response.Patient.ID = examination.PatientID
	}
	return response
}

func ExaminationsToResponses(examinations []entity.Examination) []dto.ExaminationResponse {
	responses := make([]dto.ExaminationResponse, len(examinations))
	for i := range examinations {
		responses[i] = *ExaminationToResponse(&examinations[i])
	}
	return responses
}

func DiagnosisToResponse(diagnosis *entity.Diagnosis) *dto.DiagnosisResponse {
	if diagnosis == nil {
		return nil
	}
	return &dto.DiagnosisResponse{
		ID:          diagnosis.ID,
		Name:        diagnosis.Name,
		Description: diagnosis.Description,
	}
}

func DiagnosesToResponses(diagnoses []entity.Diagnosis) []dto.DiagnosisResponse {
	responses := make([]dto.DiagnosisResponse, len(diagnoses))
	for i := range diagnoses {
		responses[i] = *DiagnosisToResponse(&diagnoses[i])
	}
	return responses
}

func SickLeaveToResponse(sickLeave *entity.SickLeave) *dto.SickLeaveResponse {
	if sickLeave == nil {
		return nil
	}
	return &dto.SickLeaveResponse{
		ID:            sickLeave.ID,
		StartDate:     sickLeave.StartDate.Format(DateLayout),
		EndDate:       sickLeave.EndDate.Format(DateLayout),
		Days:          sickLeave.Days(),
		Note:          sickLeave.Note,
		ExaminationID: sickLeave.ExaminationID,
	}
}

func SickLeavesToResponses(sickLeaves []entity.SickLeave) []dto.SickLeaveResponse {
	responses := make([]dto.SickLeaveResponse, len(sickLeaves))
	for i := range sickLeaves {
		responses[i] = *SickLeaveToResponse(&sickLeaves[i])
	}
	return responses
}
