package handler

import (
	"net/http"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"
	"clinic-records/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		log:         log,
	}
}

// Register handles doctor and patient self-registration
// @Summary Register a new doctor or patient
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to register user")
		return
	}

	response.Success(w, http.StatusCreated, result.Message, result)
}

// Login handles user login
// @Summary Login user
// @Description Login with username or email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to login")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// Logout acknowledges the caller. Tokens are not revoked server-side.
// @Summary Logout user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUsecase.Logout(r.Context(), callerOf(r)); err != nil {
		writeError(w, h.log, err, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// GetCurrentUser returns the profile of the authenticated caller
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUsecase.GetCurrentUser(r.Context(), callerOf(r))
	if err != nil {
		writeError(w, h.log, err, "Failed to get current user")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
