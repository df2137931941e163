package handler

import (
	"net/http"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"
	"clinic-records/pkg/validator"

	"github.com/sirupsen/logrus"
)

type DiagnosisHandler struct {
	diagnosisUsecase  usecase.DiagnosisUsecase
	statisticsUsecase usecase.StatisticsUsecase
	validator         *validator.CustomValidator
	log               *logrus.Logger
}

func NewDiagnosisHandler(
	diagnosisUsecase usecase.DiagnosisUsecase,
	statisticsUsecase usecase.StatisticsUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisUsecase:  diagnosisUsecase,
		statisticsUsecase: statisticsUsecase,
		validator:         validator,
		log:               log,
	}
}

func (h *DiagnosisHandler) CreateDiagnosis(w http.ResponseWriter, r *http.Request) {
	var req dto.DiagnosisRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	diagnosis, err := h.diagnosisUsecase.CreateDiagnosis(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create diagnosis")
		return
	}

	response.Success(w, http.StatusCreated, "Diagnosis created successfully", diagnosis)
}

func (h *DiagnosisHandler) GetDiagnosis(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "diagnosis")
	if !ok {
		return
	}

	diagnosis, err := h.diagnosisUsecase.GetDiagnosis(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis retrieved successfully", diagnosis)
}

func (h *DiagnosisHandler) GetAllDiagnoses(w http.ResponseWriter, r *http.Request) {
	diagnoses, err := h.diagnosisUsecase.GetAllDiagnoses(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get diagnoses")
		return
	}

	response.Success(w, http.StatusOK, "Diagnoses retrieved successfully", diagnoses)
}

func (h *DiagnosisHandler) UpdateDiagnosis(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "diagnosis")
	if !ok {
		return
	}

	var req dto.UpdateDiagnosisRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	diagnosis, err := h.diagnosisUsecase.UpdateDiagnosis(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis updated successfully", diagnosis)
}

func (h *DiagnosisHandler) DeleteDiagnosis(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "diagnosis")
	if !ok {
		return
	}

	if err := h.diagnosisUsecase.DeleteDiagnosis(r.Context(), id); err != nil {
		writeError(w, h.log, err, "Failed to delete diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis deleted successfully", nil)
}

func (h *DiagnosisHandler) GetDiagnosisStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statisticsUsecase.GetDiagnosisPatientStatistics(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get diagnosis statistics")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis statistics retrieved successfully", stats)
}
