package handler

import (
	"net/http"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"
	"clinic-records/pkg/validator"

	"github.com/sirupsen/logrus"
)

type ExaminationHandler struct {
	examinationUsecase usecase.ExaminationUsecase
	statisticsUsecase  usecase.StatisticsUsecase
	validator          *validator.CustomValidator
	log                *logrus.Logger
}

func NewExaminationHandler(
	examinationUsecase usecase.ExaminationUsecase,
	statisticsUsecase usecase.StatisticsUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *ExaminationHandler {
	return &ExaminationHandler{
		examinationUsecase: examinationUsecase,
		statisticsUsecase:  statisticsUsecase,
		validator:          validator,
		log:                log,
	}
}

func (h *ExaminationHandler) CreateExamination(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "doctorId", "doctor")
	if !ok {
		return
	}
	patientID, ok := uuidVar(w, r, "patientId", "patient")
	if !ok {
		return
	}

	var req dto.CreateExaminationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	examination, err := h.examinationUsecase.CreateExamination(r.Context(), doctorID, patientID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create examination")
		return
	}

	response.Success(w, http.StatusCreated, "Examination created successfully", examination)
}

func (h *ExaminationHandler) GetExamination(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "examination")
	if !ok {
		return
	}

	examination, err := h.examinationUsecase.GetExamination(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get examination")
		return
	}

	response.Success(w, http.StatusOK, "Examination retrieved successfully", examination)
}

func (h *ExaminationHandler) GetAllExaminations(w http.ResponseWriter, r *http.Request) {
	examinations, err := h.examinationUsecase.GetAllExaminations(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get examinations")
		return
	}

	response.Success(w, http.StatusOK, "Examinations retrieved successfully", examinations)
}

func (h *ExaminationHandler) GetExaminationsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := uuidVar(w, r, "patientId", "patient")
	if !ok {
		return
	}

	examinations, err := h.examinationUsecase.GetExaminationsByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get examinations")
		return
	}

	response.Success(w, http.StatusOK, "Examinations retrieved successfully", examinations)
}

func (h *ExaminationHandler) GetExaminationsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	examinations, err := h.examinationUsecase.GetExaminationsByDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get examinations")
		return
	}

	response.Success(w, http.StatusOK, "Examinations retrieved successfully", examinations)
}

func (h *ExaminationHandler) UpdateExamination(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "examination")
	if !ok {
		return
	}

	var req dto.UpdateExaminationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	examination, err := h.examinationUsecase.UpdateExamination(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update examination")
		return
	}

	response.Success(w, http.StatusOK, "Examination updated successfully", examination)
}

func (h *ExaminationHandler) DeleteExamination(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id", "examination")
	if !ok {
		return
	}

	if err := h.examinationUsecase.DeleteExamination(r.Context(), callerOf(r), id); err != nil {
		writeError(w, h.log, err, "Failed to delete examination")
		return
	}

	response.Success(w, http.StatusOK, "Examination deleted successfully", nil)
}

func (h *ExaminationHandler) GetVisitsPerDoctor(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statisticsUsecase.GetVisitCountPerDoctor(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to count visits per doctor")
		return
	}

	response.Success(w, http.StatusOK, "Visit counts retrieved successfully", stats)
}

func (h *ExaminationHandler) GetPatientsByDiagnosis(w http.ResponseWriter, r *http.Request) {
	patients, err := h.statisticsUsecase.GetPatientsByDiagnosis(r.Context(), r.URL.Query().Get("diagnosisName"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get patients by diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *ExaminationHandler) GetMostFrequentDiagnoses(w http.ResponseWriter, r *http.Request) {
	diagnoses, err := h.statisticsUsecase.GetMostFrequentDiagnoses(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get diagnosis frequency")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis frequency retrieved successfully", diagnoses)
}

func (h *ExaminationHandler) GetExaminationsByPeriod(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	examinations, err := h.statisticsUsecase.GetExaminationsByPeriod(r.Context(), query.Get("startDate"), query.Get("endDate"), nil)
	if err != nil {
		writeError(w, h.log, err, "Failed to get examinations by period")
		return
	}

	response.Success(w, http.StatusOK, "Examinations retrieved successfully", examinations)
}

func (h *ExaminationHandler) GetDoctorExaminationsByPeriod(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	query := r.URL.Query()
	examinations, err := h.statisticsUsecase.GetExaminationsByPeriod(r.Context(), query.Get("startDate"), query.Get("endDate"), &doctorID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get examinations by period")
		return
	}

	response.Success(w, http.StatusOK, "Examinations retrieved successfully", examinations)
}
