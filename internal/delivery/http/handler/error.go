package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-records/internal/domain/entity"
	"clinic-records/internal/delivery/http/middleware"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/response"
	"clinic-records/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// writeError maps a usecase error category to its HTTP status. Anything uncategorized is a 500
// with a generic message; the detail only goes to the log.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, usecase.ErrConflict):
		response.Conflict(w, err.Error())
	default:
		log.Errorf("%s: %+v", fallback, err)
		response.InternalServerError(w, fallback)
	}
}

// decodeAndValidate reads a JSON body into req and runs the struct validation. It writes the 400
// response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func uuidVar(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func intVar(w http.ResponseWriter, r *http.Request, name, label string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

func callerOf(r *http.Request) entity.Caller {
	caller, _ := middleware.CallerFromContext(r.Context())
	return caller
}
