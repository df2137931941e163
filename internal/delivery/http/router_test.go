package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinic-records/config"
	"clinic-records/internal/delivery/http/handler"
	"clinic-records/internal/delivery/http/middleware"
	"clinic-records/internal/domain/entity"
	"clinic-records/pkg/jwt"
	"clinic-records/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires real handlers without usecases. Only paths that stop before a usecase call
// can be exercised.
func newTestRouter(t *testing.T) (*mux.Router, *jwt.JWTService) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	v := validator.NewValidator()

	router := NewRouter(RouterConfig{
		AuthHandler:           handler.NewAuthHandler(nil, v, log),
		DoctorHandler:         handler.NewDoctorHandler(nil, nil, v, log),
		PatientHandler:        handler.NewPatientHandler(nil, v, log),
		ExaminationHandler:    handler.NewExaminationHandler(nil, nil, v, log),
		DiagnosisHandler:      handler.NewDiagnosisHandler(nil, nil, v, log),
		SickLeaveHandler:      handler.NewSickLeaveHandler(nil, nil, v, log),
		SpecializationHandler: handler.NewSpecializationHandler(nil, v, log),
		RoleHandler:           handler.NewRoleHandler(nil, v, log),
		UserHandler:           handler.NewUserHandler(nil, v, log),
		AuditLogHandler:       handler.NewAuditLogHandler(nil, log),
		AuthMiddleware:        middleware.NewAuthMiddleware(jwtService, log),
		CORSMiddleware:        middleware.NewCORSMiddleware(""),
		LoggingMiddleware:     middleware.NewLoggingMiddleware(log),
		LoginRateLimiter:      middleware.NewRateLimiter(nil, log, 5, 15*time.Minute),
	})
	return router.Setup(), jwtService
}

func bearer(t *testing.T, jwtService *jwt.JWTService, roles ...string) string {
	token, _, err := jwtService.GenerateAccessToken(uuid.New(), "tester", roles)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/doctor/list", "/api/v1/patient/list", "/api/v1/auth/me", "/api/v1/sick-leave/statistics/peak-month"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_ClinicalWritesAreDoctorOnly(t *testing.T) {
	router, jwtService := newTestRouter(t)

	path := "/api/v1/examination/doctor/" + uuid.NewString() + "/patient/" + uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearer(t, jwtService, entity.RolePatient))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/sick-leave/3", nil)
	req.Header.Set("Authorization", bearer(t, jwtService))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_RoleManagementIsDoctorOnly(t *testing.T) {
	router, jwtService := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/v1/user/" + uuid.NewString() + "/roles"},
		{http.MethodPost, "/api/v1/role"},
		{http.MethodPut, "/api/v1/role/1"},
		{http.MethodDelete, "/api/v1/role/1"},
		{http.MethodPost, "/api/v1/specialization"},
		{http.MethodDelete, "/api/v1/specialization/1"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
		req.Header.Set("Authorization", bearer(t, jwtService, entity.RolePatient))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_DoctorReachesHandlerValidation(t *testing.T) {
	router, jwtService := newTestRouter(t)

	path := "/api/v1/examination/doctor/not-a-uuid/patient/" + uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearer(t, jwtService, entity.RoleDoctor))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_LoginRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username_or_email": ""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
