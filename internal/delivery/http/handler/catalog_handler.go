package handler

import (
	"net/http"
	"strconv"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"
	"clinic-records/pkg/validator"

	"github.com/sirupsen/logrus"
)

// SpecializationHandler and RoleHandler serve the two reference tables.

type SpecializationHandler struct {
	specializationUsecase usecase.SpecializationUsecase
	validator             *validator.CustomValidator
	log                   *logrus.Logger
}

func NewSpecializationHandler(specializationUsecase usecase.SpecializationUsecase, validator *validator.CustomValidator, log *logrus.Logger) *SpecializationHandler {
	return &SpecializationHandler{
		specializationUsecase: specializationUsecase,
		validator:             validator,
		log:                   log,
	}
}

func (h *SpecializationHandler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req dto.SpecializationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	specialization, err := h.specializationUsecase.CreateSpecialization(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create specialization")
		return
	}

	response.Success(w, http.StatusCreated, "Specialization created successfully", specialization)
}

func (h *SpecializationHandler) GetSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "specialization")
	if !ok {
		return
	}

	specialization, err := h.specializationUsecase.GetSpecialization(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get specialization")
		return
	}

	response.Success(w, http.StatusOK, "Specialization retrieved successfully", specialization)
}

// GetAllSpecializations lists every specialization, or all but GP with ?excludeGP=true.
func (h *SpecializationHandler) GetAllSpecializations(w http.ResponseWriter, r *http.Request) {
	list := h.specializationUsecase.GetAllSpecializations
	if excludeGP, _ := strconv.ParseBool(r.URL.Query().Get("excludeGP")); excludeGP {
		list = h.specializationUsecase.GetSpecializationsWithoutGP
	}

	specializations, err := list(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get specializations")
		return
	}

	response.Success(w, http.StatusOK, "Specializations retrieved successfully", specializations)
}

func (h *SpecializationHandler) UpdateSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "specialization")
	if !ok {
		return
	}

	var req dto.UpdateSpecializationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	specialization, err := h.specializationUsecase.UpdateSpecialization(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update specialization")
		return
	}

	response.Success(w, http.StatusOK, "Specialization updated successfully", specialization)
}

func (h *SpecializationHandler) DeleteSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "specialization")
	if !ok {
		return
	}

	if err := h.specializationUsecase.DeleteSpecialization(r.Context(), id); err != nil {
		writeError(w, h.log, err, "Failed to delete specialization")
		return
	}

	response.Success(w, http.StatusOK, "Specialization deleted successfully", nil)
}

type RoleHandler struct {
	roleUsecase usecase.RoleUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewRoleHandler(roleUsecase usecase.RoleUsecase, validator *validator.CustomValidator, log *logrus.Logger) *RoleHandler {
	return &RoleHandler{
		roleUsecase: roleUsecase,
		validator:   validator,
		log:         log,
	}
}

func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req dto.RoleRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	role, err := h.roleUsecase.CreateRole(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create role")
		return
	}

	response.Success(w, http.StatusCreated, "Role created successfully", role)
}

func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "role")
	if !ok {
		return
	}

	role, err := h.roleUsecase.GetRole(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get role")
		return
	}

	response.Success(w, http.StatusOK, "Role retrieved successfully", role)
}

func (h *RoleHandler) GetAllRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleUsecase.GetAllRoles(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get roles")
		return
	}

	response.Success(w, http.StatusOK, "Roles retrieved successfully", roles)
}

func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "role")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	role, err := h.roleUsecase.UpdateRole(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update role")
		return
	}

	response.Success(w, http.StatusOK, "Role updated successfully", role)
}

func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "role")
	if !ok {
		return
	}

	if err := h.roleUsecase.DeleteRole(r.Context(), id); err != nil {
		writeError(w, h.log, err, "Failed to delete role")
		return
	}

	response.Success(w, http.StatusOK, "Role deleted successfully", nil)
}
