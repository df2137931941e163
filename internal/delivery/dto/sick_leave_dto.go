package dto

type CreateSickLeaveRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Note      string `json:"note" validate:"omitempty,max=2000"`
}

type UpdateSickLeaveRequest struct {
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Note      *string `json:"note" validate:"omitempty,max=2000"`
}

type SickLeaveResponse struct {
	ID            int    `json:"id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Days          int    `json:"days"`
	Note          string `json:"note,omitempty"`
	ExaminationID int    `json:"examination_id"`
}

type SickLeaveListResponse struct {
	SickLeaves []SickLeaveResponse `json:"sick_leaves"`
	Total      int                 `json:"total"`
}
