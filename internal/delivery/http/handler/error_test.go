package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StatusByCategory(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cases := []struct {
		err     error
		status  int
		message string
	}{
		{usecase.ErrPatientNotFound, http.StatusNotFound, "patient not found"},
		{usecase.ErrInvalidEGN, http.StatusBadRequest, "EGN must be exactly 10 digits"},
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized, "invalid username/email or password"},
		{usecase.ErrSickLeaveExists, http.StatusConflict, "examination already has a sick leave"},
		{usecase.ErrDoctorHasPatients, http.StatusConflict, "doctor has registered patients"},
		{errors.New("connection reset"), http.StatusInternalServerError, "Failed to load patients"},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, log, tc.err, "Failed to load patients")

			assert.Equal(t, tc.status, rec.Code)

			var body response.Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestIntVar(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/examination/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := intVar(w, r, "id", "examination"); ok {
			w.WriteHeader(http.StatusNoContent)
		}
	})

	for path, status := range map[string]int{
		"/examination/12":  http.StatusNoContent,
		"/examination/0":   http.StatusBadRequest,
		"/examination/abc": http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, rec.Code, path)
	}
}
