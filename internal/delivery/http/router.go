package http

import (
	"net/http"

	"clinic-records/internal/delivery/http/handler"
	"clinic-records/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	doctorHandler         *handler.DoctorHandler
	patientHandler        *handler.PatientHandler
	examinationHandler    *handler.ExaminationHandler
	diagnosisHandler      *handler.DiagnosisHandler
	sickLeaveHandler      *handler.SickLeaveHandler
	specializationHandler *handler.SpecializationHandler
	roleHandler           *handler.RoleHandler
	userHandler           *handler.UserHandler
	auditLogHandler       *handler.AuditLogHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	loggingMiddleware     *middleware.LoggingMiddleware
	loginRateLimiter      *middleware.RateLimiter
}

type RouterConfig struct {
	AuthHandler           *handler.AuthHandler
	DoctorHandler         *handler.DoctorHandler
	PatientHandler        *handler.PatientHandler
	ExaminationHandler    *handler.ExaminationHandler
	DiagnosisHandler      *handler.DiagnosisHandler
	SickLeaveHandler      *handler.SickLeaveHandler
	SpecializationHandler *handler.SpecializationHandler
	RoleHandler           *handler.RoleHandler
	UserHandler           *handler.UserHandler
	AuditLogHandler       *handler.AuditLogHandler
	AuthMiddleware        *middleware.AuthMiddleware
	CORSMiddleware        *middleware.CORSMiddleware
	LoggingMiddleware     *middleware.LoggingMiddleware
	LoginRateLimiter      *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           cfg.AuthHandler,
		doctorHandler:         cfg.DoctorHandler,
		patientHandler:        cfg.PatientHandler,
		examinationHandler:    cfg.ExaminationHandler,
		diagnosisHandler:      cfg.DiagnosisHandler,
		sickLeaveHandler:      cfg.SickLeaveHandler,
		specializationHandler: cfg.SpecializationHandler,
		roleHandler:           cfg.RoleHandler,
		userHandler:           cfg.UserHandler,
		auditLogHandler:       cfg.AuditLogHandler,
		authMiddleware:        cfg.AuthMiddleware,
		corsMiddleware:        cfg.CORSMiddleware,
		loggingMiddleware:     cfg.LoggingMiddleware,
		loginRateLimiter:      cfg.LoginRateLimiter,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Handle("/login", r.loginRateLimiter.Limit(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)

	// Everything below requires a bearer token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctors
	doctor := protected.PathPrefix("/doctor").Subrouter()
	doctor.HandleFunc("/list", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	doctor.HandleFunc("/gp-list", r.doctorHandler.GetGPs).Methods(http.MethodGet)
	doctor.HandleFunc("/gp-patient-count", r.doctorHandler.GetGPPatientCount).Methods(http.MethodGet)
	doctor.HandleFunc("/statistics/doctors-most-sick-leaves", r.doctorHandler.GetDoctorsWithMostSickLeaves).Methods(http.MethodGet)
	doctor.HandleFunc("", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	doctor.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	doctor.HandleFunc("/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	doctor.HandleFunc("/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Patients
	patient := protected.PathPrefix("/patient").Subrouter()
	patient.HandleFunc("/list", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	patient.HandleFunc("/by-egn/{egn}", r.patientHandler.GetPatientByEGN).Methods(http.MethodGet)
	patient.HandleFunc("/by-doctor/{doctorId}", r.patientHandler.GetPatientsByDoctor).Methods(http.MethodGet)
	patient.HandleFunc("", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	patient.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patient.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	patient.HandleFunc("/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Examinations (writes are doctor-only)
	examination := protected.PathPrefix("/examination").Subrouter()
	examination.HandleFunc("/list", r.examinationHandler.GetAllExaminations).Methods(http.MethodGet)
	examination.HandleFunc("/visits-per-doctor", r.examinationHandler.GetVisitsPerDoctor).Methods(http.MethodGet)
	examination.HandleFunc("/patients-by-diagnosis", r.examinationHandler.GetPatientsByDiagnosis).Methods(http.MethodGet)
	examination.HandleFunc("/most-frequent-diagnoses", r.examinationHandler.GetMostFrequentDiagnoses).Methods(http.MethodGet)
	examination.HandleFunc("/by-period", r.examinationHandler.GetExaminationsByPeriod).Methods(http.MethodGet)
	examination.HandleFunc("/patient/{patientId}", r.examinationHandler.GetExaminationsByPatient).Methods(http.MethodGet)
	examination.HandleFunc("/doctor/{doctorId}", r.examinationHandler.GetExaminationsByDoctor).Methods(http.MethodGet)
	examination.HandleFunc("/doctor/{doctorId}/by-period", r.examinationHandler.GetDoctorExaminationsByPeriod).Methods(http.MethodGet)
	examination.Handle("/doctor/{doctorId}/patient/{patientId}", doctorOnly(r.examinationHandler.CreateExamination)).Methods(http.MethodPost)
	examination.HandleFunc("/{id:[0-9]+}", r.examinationHandler.GetExamination).Methods(http.MethodGet)
	examination.Handle("/{id:[0-9]+}", doctorOnly(r.examinationHandler.UpdateExamination)).Methods(http.MethodPut)
	examination.Handle("/{id:[0-9]+}", doctorOnly(r.examinationHandler.DeleteExamination)).Methods(http.MethodDelete)

	// Diagnoses
	diagnosis := protected.PathPrefix("/diagnosis").Subrouter()
	diagnosis.HandleFunc("/list", r.diagnosisHandler.GetAllDiagnoses).Methods(http.MethodGet)
	diagnosis.HandleFunc("/statistics", r.diagnosisHandler.GetDiagnosisStatistics).Methods(http.MethodGet)
	diagnosis.HandleFunc("", r.diagnosisHandler.CreateDiagnosis).Methods(http.MethodPost)
	diagnosis.HandleFunc("/{id:[0-9]+}", r.diagnosisHandler.GetDiagnosis).Methods(http.MethodGet)
	diagnosis.HandleFunc("/{id:[0-9]+}", r.diagnosisHandler.UpdateDiagnosis).Methods(http.MethodPut)
	diagnosis.HandleFunc("/{id:[0-9]+}", r.diagnosisHandler.DeleteDiagnosis).Methods(http.MethodDelete)

	// Sick leaves (writes are doctor-only)
	sickLeave := protected.PathPrefix("/sick-leave").Subrouter()
	sickLeave.HandleFunc("/list", r.sickLeaveHandler.GetAllSickLeaves).Methods(http.MethodGet)
	sickLeave.HandleFunc("/statistics/peak-month", r.sickLeaveHandler.GetPeakMonth).Methods(http.MethodGet)
	sickLeave.Handle("/examination/{examinationId:[0-9]+}", doctorOnly(r.sickLeaveHandler.CreateSickLeave)).Methods(http.MethodPost)
	sickLeave.HandleFunc("/{id:[0-9]+}", r.sickLeaveHandler.GetSickLeave).Methods(http.MethodGet)
	sickLeave.Handle("/{id:[0-9]+}", doctorOnly(r.sickLeaveHandler.UpdateSickLeave)).Methods(http.MethodPut)
	sickLeave.Handle("/{id:[0-9]+}", doctorOnly(r.sickLeaveHandler.DeleteSickLeave)).Methods(http.MethodDelete)

	// Specializations (writes are doctor-only)
	specialization := protected.PathPrefix("/specialization").Subrouter()
	specialization.HandleFunc("/list", r.specializationHandler.GetAllSpecializations).Methods(http.MethodGet)
	specialization.Handle("", doctorOnly(r.specializationHandler.CreateSpecialization)).Methods(http.MethodPost)
	specialization.HandleFunc("/{id:[0-9]+}", r.specializationHandler.GetSpecialization).Methods(http.MethodGet)
	specialization.Handle("/{id:[0-9]+}", doctorOnly(r.specializationHandler.UpdateSpecialization)).Methods(http.MethodPut)
	specialization.Handle("/{id:[0-9]+}", doctorOnly(r.specializationHandler.DeleteSpecialization)).Methods(http.MethodDelete)

	// Roles (writes are doctor-only)
	role := protected.PathPrefix("/role").Subrouter()
	role.HandleFunc("/list", r.roleHandler.GetAllRoles).Methods(http.MethodGet)
	role.Handle("", doctorOnly(r.roleHandler.CreateRole)).Methods(http.MethodPost)
	role.HandleFunc("/{id:[0-9]+}", r.roleHandler.GetRole).Methods(http.MethodGet)
	role.Handle("/{id:[0-9]+}", doctorOnly(r.roleHandler.UpdateRole)).Methods(http.MethodPut)
	role.Handle("/{id:[0-9]+}", doctorOnly(r.roleHandler.DeleteRole)).Methods(http.MethodDelete)

	// Users
	user := protected.PathPrefix("/user").Subrouter()
	user.HandleFunc("/list", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	user.HandleFunc("/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	user.HandleFunc("/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)
	user.Handle("/{id}/roles", doctorOnly(r.userHandler.UpdateUserRoles)).Methods(http.MethodPut)

	// Audit log
	auditLog := protected.PathPrefix("/audit-log").Subrouter()
	auditLog.HandleFunc("/list", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	auditLog.HandleFunc("/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func doctorOnly(h http.HandlerFunc) http.Handler {
	return middleware.RequireDoctor(h)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
