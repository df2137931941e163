package dto

type CreateExaminationRequest struct {
	ExaminationDate string `json:"examination_date" validate:"required,datetime=2006-01-02"`
	Treatment       string `json:"treatment" validate:"omitempty,max=2000"`
	DiagnosisIDs    []int  `json:"diagnosis_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateExaminationRequest struct {
	ExaminationDate *string `json:"examination_date" validate:"omitempty,datetime=2006-01-02"`
	Treatment       *string `json:"treatment" validate:"omitempty,max=2000"`
	DiagnosisIDs    *[]int  `json:"diagnosis_ids" validate:"omitempty,dive,gt=0"`
}

type ExaminationResponse struct {
	ID              int                 `json:"id"`
	ExaminationDate string              `json:"examination_date"`
	Treatment       string              `json:"treatment,omitempty"`
	Doctor          DoctorSummary       `json:"doctor"`
	Patient         PatientSummary      `json:"patient"`
	Diagnoses       []DiagnosisResponse `json:"diagnoses"`
	SickLeave       *SickLeaveResponse  `json:"sick_leave,omitempty"`
}

type ExaminationListResponse struct {
	Examinations []ExaminationResponse `json:"examinations"`
	Total        int                   `json:"total"`
}
