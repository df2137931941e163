package dto

type DiagnosisRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateDiagnosisRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type DiagnosisResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DiagnosisListResponse struct {
	Diagnoses []DiagnosisResponse `json:"diagnoses"`
	Total     int                 `json:"total"`
}
