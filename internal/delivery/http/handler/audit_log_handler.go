package handler

import (
	"net/http"
	"strconv"

	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	log             *logrus.Logger
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, log *logrus.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		log:             log,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}
