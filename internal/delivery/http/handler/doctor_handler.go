package handler

import (
	"net/http"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"
	"clinic-records/pkg/validator"

	"github.com/sirupsen/logrus"
)

type DoctorHandler struct {
	doctorUsecase     usecase.DoctorProfileUsecase
	statisticsUsecase usecase.StatisticsUsecase
	validator         *validator.CustomValidator
	log               *logrus.Logger
}

func NewDoctorHandler(
	doctorUsecase usecase.DoctorProfileUsecase,
	statisticsUsecase usecase.StatisticsUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase:     doctorUsecase,
		statisticsUsecase: statisticsUsecase,
		validator:         validator,
		log:               log,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), callerOf(r), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetGPs(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetGPs(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get general practitioners")
		return
	}

	response.Success(w, http.StatusOK, "General practitioners retrieved successfully", doctors)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.UpdateDoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.UpdateDoctor(r.Context(), callerOf(r), doctorID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "id", "doctor")
	if !ok {
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), callerOf(r), doctorID); err != nil {
		writeError(w, h.log, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *DoctorHandler) GetGPPatientCount(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statisticsUsecase.GetPatientCountByGPs(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to count patients per GP")
		return
	}

	response.Success(w, http.StatusOK, "GP patient counts retrieved successfully", stats)
}

func (h *DoctorHandler) GetDoctorsWithMostSickLeaves(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.statisticsUsecase.GetDoctorsWithMostSickLeaves(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get sick leave statistics")
		return
	}

	response.Success(w, http.StatusOK, "Sick leave statistics retrieved successfully", doctors)
}
