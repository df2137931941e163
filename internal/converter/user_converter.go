package converter

import (
	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// UserToResponse converts a User entity to UserResponse DTO. Roles must be preloaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		BirthDate: user.BirthDate.Format(DateLayout),
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		Gender:    string(user.Gender),
		Kind:      user.Kind(),
		Roles:     user.RoleNames(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
