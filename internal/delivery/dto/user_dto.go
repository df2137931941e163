package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,min=6,max=20"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
}

type UpdateUserRolesRequest struct {
	RoleIDs []int `json:"role_ids" validate:"required,min=1,dive,gt=0"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	BirthDate string    `json:"birth_date"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Gender    string    `json:"gender"`
	Kind      string    `json:"kind,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
