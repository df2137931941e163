package handler

import (
	"net/http"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"
	"clinic-records/pkg/validator"

	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		log:         log,
	}
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidVar(w, r, "id", "user")
	if !ok {
		return
	}

	user, err := h.userUsecase.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get user")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidVar(w, r, "id", "user")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update user")
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) UpdateUserRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidVar(w, r, "id", "user")
	if !ok {
		return
	}

	var req dto.UpdateUserRolesRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.UpdateUserRoles(r.Context(), callerOf(r), userID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update user roles")
		return
	}

	response.Success(w, http.StatusOK, "User roles updated successfully", user)
}
