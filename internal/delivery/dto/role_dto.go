package dto

type RoleRequest struct {
	RoleName    string `json:"role_name" validate:"required,max=50"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateRoleRequest struct {
	RoleName    *string `json:"role_name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type RoleResponse struct {
	ID          int    `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"description,omitempty"`
}

type RoleListResponse struct {
	Roles []RoleResponse `json:"roles"`
	Total int            `json:"total"`
}
