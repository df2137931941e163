package handler

import (
	"net/http"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"
	"clinic-records/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type PatientHandler struct {
	patientUsecase usecase.PatientProfileUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewPatientHandler(patientUsecase usecase.PatientProfileUsecase, validator *validator.CustomValidator, log *logrus.Logger) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
		log:            log,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), callerOf(r), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := uuidVar(w, r, "id", "patient")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) GetPatientByEGN(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.GetPatientByEGN(r.Context(), mux.Vars(r)["egn"])
	if err != nil {
		writeError(w, h.log, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.GetAllPatients(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatientsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	patients, err := h.patientUsecase.GetPatientsByDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := uuidVar(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), callerOf(r), patientID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := uuidVar(w, r, "id", "patient")
	if !ok {
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), callerOf(r), patientID); err != nil {
		writeError(w, h.log, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
