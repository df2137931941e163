package dto

type SpecializationRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateSpecializationRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type SpecializationResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type SpecializationListResponse struct {
	Specializations []SpecializationResponse `json:"specializations"`
	Total           int                      `json:"total"`
}
