package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error categories. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
)

// Error is a domain error that belongs to exactly one category.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

var (
	ErrUserNotFound           = newError(ErrNotFound, "user not found")
	ErrDoctorNotFound         = newError(ErrNotFound, "doctor not found")
	ErrPersonalDoctorNotFound = newError(ErrNotFound, "personal doctor not found")
	ErrPatientNotFound        = newError(ErrNotFound, "patient not found")
	ErrExaminationNotFound    = newError(ErrNotFound, "examination not found")
	ErrDiagnosisNotFound      = newError(ErrNotFound, "diagnosis not found")
	ErrSickLeaveNotFound      = newError(ErrNotFound, "sick leave not found")
	ErrSpecializationNotFound = newError(ErrNotFound, "specialization not found")
	ErrRoleNotFound           = newError(ErrNotFound, "role not found")
	ErrAuditLogNotFound       = newError(ErrNotFound, "audit log not found")

	ErrInvalidUserType         = newError(ErrValidation, "user type must be either doctor or patient")
	ErrInvalidEGN              = newError(ErrValidation, "EGN must be exactly 10 digits")
	ErrInvalidDateFormat       = newError(ErrValidation, "invalid date format, use YYYY-MM-DD")
	ErrInvalidDateRange        = newError(ErrValidation, "start date must not be after end date")
	ErrInvalidYear             = newError(ErrValidation, "year must be between 1 and 9999")
	ErrDiagnosisNameRequired   = newError(ErrValidation, "diagnosis name is required")
	ErrGPSpecializationMissing = newError(ErrValidation, "GP specialization not found")
	ErrRoleNotConfigured       = newError(ErrValidation, "required role is not configured")
	ErrRoleVariantMismatch     = newError(ErrValidation, "roles must match the user's doctor or patient profile")

	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid username/email or password")

	ErrUsernameExists           = newError(ErrConflict, "username already exists")
	ErrEmailExists              = newError(ErrConflict, "email already exists")
	ErrPhoneExists              = newError(ErrConflict, "phone already exists")
	ErrEGNExists                = newError(ErrConflict, "EGN already exists")
	ErrRoleNameExists           = newError(ErrConflict, "role name already exists")
	ErrSpecializationNameExists = newError(ErrConflict, "specialization name already exists")
	ErrDuplicateEntry           = newError(ErrConflict, "record already exists")
	ErrDoctorHasPatients        = newError(ErrConflict, "doctor has registered patients")
	ErrDoctorHasExaminations    = newError(ErrConflict, "doctor has examinations")
	ErrSickLeaveExists          = newError(ErrConflict, "examination already has a sick leave")
	ErrSystemRole               = newError(ErrConflict, "built-in role cannot be renamed or deleted")
	ErrSystemSpecialization     = newError(ErrConflict, "GP specialization cannot be renamed or deleted")
)

// isDuplicateKeyError checks for a unique constraint violation. With a constraint name it only
// matches PostgreSQL errors on that constraint.
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505" &&
			strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return constraintName == "" && errors.Is(err, gorm.ErrDuplicatedKey)
}

// isForeignKeyError checks for a PostgreSQL foreign key violation on the named constraint.
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503" &&
			strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
