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

type SickLeaveHandler struct {
	sickLeaveUsecase  usecase.SickLeaveUsecase
	statisticsUsecase usecase.StatisticsUsecase
	validator         *validator.CustomValidator
	log               *logrus.Logger
}

func NewSickLeaveHandler(
	sickLeaveUsecase usecase.SickLeaveUsecase,
	statisticsUsecase usecase.StatisticsUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *SickLeaveHandler {
	return &SickLeaveHandler{
		sickLeaveUsecase:  sickLeaveUsecase,
		statisticsUsecase: statisticsUsecase,
		validator:         validator,
		log:               log,
	}
}

func (h *SickLeaveHandler) CreateSickLeave(w http.ResponseWriter, r *http.Request) {
	examinationID, ok := intVar(w, r, "examinationId", "examination")
	if !ok {
		return
	}

	var req dto.CreateSickLeaveRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	sickLeave, err := h.sickLeaveUsecase.CreateSickLeave(r.Context(), examinationID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create sick leave")
		return
	}

	response.Success(w, http.StatusCreated, "Sick leave created successfully", sickLeave)
}

func (h *SickLeaveHandler) GetSickLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "sick leave")
	if !ok {
		return
	}

	sickLeave, err := h.sickLeaveUsecase.GetSickLeave(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get sick leave")
		return
	}

	response.Success(w, http.StatusOK, "Sick leave retrieved successfully", sickLeave)
}

func (h *SickLeaveHandler) GetAllSickLeaves(w http.ResponseWriter, r *http.Request) {
	sickLeaves, err := h.sickLeaveUsecase.GetAllSickLeaves(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get sick leaves")
		return
	}

	response.Success(w, http.StatusOK, "Sick leaves retrieved successfully", sickLeaves)
}

func (h *SickLeaveHandler) UpdateSickLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "sick leave")
	if !ok {
		return
	}

	var req dto.UpdateSickLeaveRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	sickLeave, err := h.sickLeaveUsecase.UpdateSickLeave(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update sick leave")
		return
	}

	response.Success(w, http.StatusOK, "Sick leave updated successfully", sickLeave)
}

func (h *SickLeaveHandler) DeleteSickLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "sick leave")
	if !ok {
		return
	}

	if err := h.sickLeaveUsecase.DeleteSickLeave(r.Context(), callerOf(r), id); err != nil {
		writeError(w, h.log, err, "Failed to delete sick leave")
		return
	}

	response.Success(w, http.StatusOK, "Sick leave deleted successfully", nil)
}

func (h *SickLeaveHandler) GetPeakMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Invalid year")
		return
	}

	peak, err := h.statisticsUsecase.GetPeakSickLeaveMonth(r.Context(), year)
	if err != nil {
		writeError(w, h.log, err, "Failed to get peak sick leave month")
		return
	}

	response.Success(w, http.StatusOK, "Peak sick leave month retrieved successfully", peak)
}
