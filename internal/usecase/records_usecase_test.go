package usecase

import (
	"context"
	"testing"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDoctor(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	caller := entity.Caller{Username: "admin"}

	t.Run("still a personal doctor", func(t *testing.T) {
		doctor := insertDoctor(t, db, "DOC001", true)
		insertPatient(t, db, "1234567890", doctor.UserID)

		err := uc.doctor.DeleteDoctor(context.Background(), caller, doctor.UserID)
		assert.ErrorIs(t, err, ErrDoctorHasPatients)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, int64(1), countRows(t, db, &entity.DoctorProfile{}))
	})

	t.Run("has examinations", func(t *testing.T) {
		gp := insertDoctor(t, db, "DOC002", true)
		specialist := insertDoctor(t, db, "DOC003", false)
		patient := insertPatient(t, db, "2234567890", gp.UserID)
		insertExamination(t, db, specialist.UserID, patient.UserID, "2024-06-01")

		err := uc.doctor.DeleteDoctor(context.Background(), caller, specialist.UserID)
		assert.ErrorIs(t, err, ErrDoctorHasExaminations)
	})

	t.Run("free doctor", func(t *testing.T) {
		doctor := insertDoctor(t, db, "DOC004", false)

		require.NoError(t, uc.doctor.DeleteDoctor(context.Background(), caller, doctor.UserID))

		var n int64
		require.NoError(t, db.Model(&entity.User{}).Where("id = ?", doctor.UserID).Count(&n).Error)
		assert.Zero(t, n)

		var audit entity.AuditLog
		require.NoError(t, db.Where("action = ?", entity.AuditActionDoctorDelete).First(&audit).Error)
		assert.Equal(t, doctor.UserID.String(), audit.Metadata["entity_id"])
	})

	t.Run("unknown doctor", func(t *testing.T) {
		err := uc.doctor.DeleteDoctor(context.Background(), caller, uuid.New())
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}

func TestUpdateDoctor_GPKeepsGPSpecialization(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctorID := registerDoctor(t, uc, "doc", false)

	isGP := true
	res, err := uc.doctor.UpdateDoctor(context.Background(), entity.Caller{}, doctorID, &dto.UpdateDoctorRequest{IsGP: &isGP})
	require.NoError(t, err)
	assert.True(t, res.IsGP)
	require.Len(t, res.Specializations, 1)
	assert.Equal(t, entity.SpecializationGP, res.Specializations[0].Name)

	gps, err := uc.doctor.GetGPs(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, gps.Total)
	assert.Equal(t, doctorID, gps.Doctors[0].ID)
}

func TestDeletePatient_RemovesClinicalRecords(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)
	other := insertPatient(t, db, "2234567890", doctor.UserID)
	flu := insertDiagnosis(t, db, "Flu")

	first := insertExamination(t, db, doctor.UserID, patient.UserID, "2024-01-10", flu)
	insertExamination(t, db, doctor.UserID, patient.UserID, "2024-02-10")
	kept := insertExamination(t, db, doctor.UserID, other.UserID, "2024-02-11", flu)
	insertSickLeave(t, db, first.ID, "2024-01-10", "2024-01-14")
	insertSickLeave(t, db, kept.ID, "2024-02-11", "2024-02-12")

	require.NoError(t, uc.patient.DeletePatient(context.Background(), entity.Caller{}, patient.UserID))

	assert.Equal(t, int64(1), countRows(t, db, &entity.Examination{}))
	assert.Equal(t, int64(1), countRows(t, db, &entity.SickLeave{}))
	assert.Equal(t, int64(1), countRows(t, db, &entity.PatientProfile{}))

	var links int64
	require.NoError(t, db.Table("examination_diagnoses").Count(&links).Error)
	assert.Equal(t, int64(1), links)

	_, err := uc.patient.GetPatient(context.Background(), patient.UserID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestGetPatientByEGN(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)

	res, err := uc.patient.GetPatientByEGN(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, patient.UserID, res.ID)

	_, err = uc.patient.GetPatientByEGN(context.Background(), "12a4567890")
	assert.ErrorIs(t, err, ErrInvalidEGN)

	_, err = uc.patient.GetPatientByEGN(context.Background(), "9999999999")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestCreateExamination(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)
	flu := insertDiagnosis(t, db, "Flu")

	t.Run("with diagnoses", func(t *testing.T) {
		res, err := uc.examination.CreateExamination(context.Background(), doctor.UserID, patient.UserID, &dto.CreateExaminationRequest{
			ExaminationDate: "2024-06-01",
			Treatment:       "Rest",
			DiagnosisIDs:    []int{flu.ID, flu.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01", res.ExaminationDate)
		assert.Equal(t, "DOC001", res.Doctor.DoctorIdentity)
		require.Len(t, res.Diagnoses, 1)
		assert.Equal(t, "Flu", res.Diagnoses[0].Name)
	})

	t.Run("unknown diagnosis", func(t *testing.T) {
		_, err := uc.examination.CreateExamination(context.Background(), doctor.UserID, patient.UserID, &dto.CreateExaminationRequest{
			ExaminationDate: "2024-06-02",
			DiagnosisIDs:    []int{flu.ID, 999},
		})
		assert.ErrorIs(t, err, ErrDiagnosisNotFound)
	})

	t.Run("unknown patient", func(t *testing.T) {
		_, err := uc.examination.CreateExamination(context.Background(), doctor.UserID, uuid.New(), &dto.CreateExaminationRequest{
			ExaminationDate: "2024-06-02",
		})
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := uc.examination.CreateExamination(context.Background(), doctor.UserID, patient.UserID, &dto.CreateExaminationRequest{
			ExaminationDate: "2024-13-01",
		})
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})

	assert.Equal(t, int64(1), countRows(t, db, &entity.Examination{}))
}

func TestDeleteExamination_RemovesSickLeave(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)
	exam := insertExamination(t, db, doctor.UserID, patient.UserID, "2024-06-01", insertDiagnosis(t, db, "Flu"))
	insertSickLeave(t, db, exam.ID, "2024-06-01", "2024-06-05")

	require.NoError(t, uc.examination.DeleteExamination(context.Background(), entity.Caller{}, exam.ID))

	assert.Zero(t, countRows(t, db, &entity.Examination{}))
	assert.Zero(t, countRows(t, db, &entity.SickLeave{}))

	err := uc.examination.DeleteExamination(context.Background(), entity.Caller{}, exam.ID)
	assert.ErrorIs(t, err, ErrExaminationNotFound)
}

func TestCreateSickLeave(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)
	exam := insertExamination(t, db, doctor.UserID, patient.UserID, "2024-06-01")

	t.Run("end before start", func(t *testing.T) {
		_, err := uc.sickLeave.CreateSickLeave(context.Background(), exam.ID, &dto.CreateSickLeaveRequest{
			StartDate: "2024-06-05",
			EndDate:   "2024-06-01",
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("created", func(t *testing.T) {
		res, err := uc.sickLeave.CreateSickLeave(context.Background(), exam.ID, &dto.CreateSickLeaveRequest{
			StartDate: "2024-06-01",
			EndDate:   "2024-06-05",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, res.Days)
		assert.Equal(t, exam.ID, res.ExaminationID)
	})

	t.Run("second sick leave for one examination", func(t *testing.T) {
		_, err := uc.sickLeave.CreateSickLeave(context.Background(), exam.ID, &dto.CreateSickLeaveRequest{
			StartDate: "2024-06-02",
			EndDate:   "2024-06-03",
		})
		assert.ErrorIs(t, err, ErrSickLeaveExists)
	})

	t.Run("unknown examination", func(t *testing.T) {
		_, err := uc.sickLeave.CreateSickLeave(context.Background(), 999, &dto.CreateSickLeaveRequest{
			StartDate: "2024-06-02",
			EndDate:   "2024-06-03",
		})
		assert.ErrorIs(t, err, ErrExaminationNotFound)
	})

	assert.Equal(t, int64(1), countRows(t, db, &entity.SickLeave{}))
}

func TestUpdatePatient(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	gp := insertDoctor(t, db, "DOC001", true)
	specialist := insertDoctor(t, db, "DOC002", false)
	patient := insertPatient(t, db, "1234567890", gp.UserID)
	insertPatient(t, db, "2234567890", gp.UserID)

	t.Run("omitted fields are kept", func(t *testing.T) {
		lastName := "Georgieva"
		insured := true
		res, err := uc.patient.UpdatePatient(context.Background(), entity.Caller{}, patient.UserID, &dto.UpdatePatientRequest{
			LastName:         &lastName,
			HasPaidInsurance: &insured,
		})
		require.NoError(t, err)
		assert.Equal(t, "Pat", res.FirstName)
		assert.Equal(t, "Georgieva", res.LastName)
		assert.Equal(t, "1234567890", res.EGN)
		assert.True(t, res.HasPaidInsurance)
		require.NotNil(t, res.PersonalDoctor)
		assert.Equal(t, "DOC001", res.PersonalDoctor.DoctorIdentity)
	})

	t.Run("personal doctor is resolved again", func(t *testing.T) {
		res, err := uc.patient.UpdatePatient(context.Background(), entity.Caller{}, patient.UserID, &dto.UpdatePatientRequest{
			PersonalDoctorID: &specialist.UserID,
		})
		require.NoError(t, err)
		require.NotNil(t, res.PersonalDoctor)
		assert.Equal(t, "DOC002", res.PersonalDoctor.DoctorIdentity)

		var stored entity.PatientProfile
		require.NoError(t, db.First(&stored, "user_id = ?", patient.UserID).Error)
		assert.Equal(t, specialist.UserID, stored.PersonalDoctorID)

		unknown := uuid.New()
		_, err = uc.patient.UpdatePatient(context.Background(), entity.Caller{}, patient.UserID, &dto.UpdatePatientRequest{
			PersonalDoctorID: &unknown,
		})
		assert.ErrorIs(t, err, ErrPersonalDoctorNotFound)
	})

	t.Run("EGN is validated again", func(t *testing.T) {
		short := "12345"
		_, err := uc.patient.UpdatePatient(context.Background(), entity.Caller{}, patient.UserID, &dto.UpdatePatientRequest{EGN: &short})
		assert.ErrorIs(t, err, ErrInvalidEGN)

		taken := "2234567890"
		_, err = uc.patient.UpdatePatient(context.Background(), entity.Caller{}, patient.UserID, &dto.UpdatePatientRequest{EGN: &taken})
		assert.ErrorIs(t, err, ErrEGNExists)

		fresh := "3334567890"
		res, err := uc.patient.UpdatePatient(context.Background(), entity.Caller{}, patient.UserID, &dto.UpdatePatientRequest{EGN: &fresh})
		require.NoError(t, err)
		assert.Equal(t, fresh, res.EGN)
	})

	t.Run("unknown patient", func(t *testing.T) {
		_, err := uc.patient.UpdatePatient(context.Background(), entity.Caller{}, uuid.New(), &dto.UpdatePatientRequest{})
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestUpdateSickLeave(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)
	exam := insertExamination(t, db, doctor.UserID, patient.UserID, "2024-06-01")
	sickLeave := insertSickLeave(t, db, exam.ID, "2024-06-01", "2024-06-05")

	t.Run("end moved before the kept start", func(t *testing.T) {
		end := "2024-05-30"
		_, err := uc.sickLeave.UpdateSickLeave(context.Background(), sickLeave.ID, &dto.UpdateSickLeaveRequest{EndDate: &end})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("start moved after the kept end", func(t *testing.T) {
		start := "2024-06-06"
		_, err := uc.sickLeave.UpdateSickLeave(context.Background(), sickLeave.ID, &dto.UpdateSickLeaveRequest{StartDate: &start})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("days follow the new end", func(t *testing.T) {
		end := "2024-06-11"
		note := "extended"
		res, err := uc.sickLeave.UpdateSickLeave(context.Background(), sickLeave.ID, &dto.UpdateSickLeaveRequest{EndDate: &end, Note: &note})
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01", res.StartDate)
		assert.Equal(t, "2024-06-11", res.EndDate)
		assert.Equal(t, 10, res.Days)
		assert.Equal(t, "extended", res.Note)
	})

	t.Run("unknown sick leave", func(t *testing.T) {
		_, err := uc.sickLeave.UpdateSickLeave(context.Background(), 999, &dto.UpdateSickLeaveRequest{})
		assert.ErrorIs(t, err, ErrSickLeaveNotFound)
	})
}

func TestUpdateExamination(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)
	flu := insertDiagnosis(t, db, "Flu")
	cold := insertDiagnosis(t, db, "Cold")
	exam := insertExamination(t, db, doctor.UserID, patient.UserID, "2024-06-01", flu)

	linkedDiagnoses := func() []int {
		var ids []int
		require.NoError(t, db.Table("examination_diagnoses").Where("examination_id = ?", exam.ID).Pluck("diagnosis_id", &ids).Error)
		return ids
	}

	t.Run("treatment only keeps diagnoses", func(t *testing.T) {
		treatment := "Fluids"
		res, err := uc.examination.UpdateExamination(context.Background(), exam.ID, &dto.UpdateExaminationRequest{Treatment: &treatment})
		require.NoError(t, err)
		assert.Equal(t, "Fluids", res.Treatment)
		assert.Equal(t, "2024-06-01", res.ExaminationDate)
		assert.Equal(t, []int{flu.ID}, linkedDiagnoses())
	})

	t.Run("diagnoses are replaced", func(t *testing.T) {
		ids := []int{cold.ID}
		res, err := uc.examination.UpdateExamination(context.Background(), exam.ID, &dto.UpdateExaminationRequest{DiagnosisIDs: &ids})
		require.NoError(t, err)
		require.Len(t, res.Diagnoses, 1)
		assert.Equal(t, "Cold", res.Diagnoses[0].Name)
		assert.Equal(t, []int{cold.ID}, linkedDiagnoses())
	})

	t.Run("empty list clears diagnoses", func(t *testing.T) {
		ids := []int{}
		res, err := uc.examination.UpdateExamination(context.Background(), exam.ID, &dto.UpdateExaminationRequest{DiagnosisIDs: &ids})
		require.NoError(t, err)
		assert.Empty(t, res.Diagnoses)
		assert.Empty(t, linkedDiagnoses())
	})

	t.Run("unknown diagnosis leaves links alone", func(t *testing.T) {
		ids := []int{flu.ID}
		_, err := uc.examination.UpdateExamination(context.Background(), exam.ID, &dto.UpdateExaminationRequest{DiagnosisIDs: &ids})
		require.NoError(t, err)

		ids = []int{cold.ID, 999}
		_, err = uc.examination.UpdateExamination(context.Background(), exam.ID, &dto.UpdateExaminationRequest{DiagnosisIDs: &ids})
		assert.ErrorIs(t, err, ErrDiagnosisNotFound)
		assert.Equal(t, []int{flu.ID}, linkedDiagnoses())
	})

	t.Run("bad date", func(t *testing.T) {
		date := "2024-02-30"
		_, err := uc.examination.UpdateExamination(context.Background(), exam.ID, &dto.UpdateExaminationRequest{ExaminationDate: &date})
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	user := insertUser(t, db, "Elena", "Dimitrova")
	other := insertUser(t, db, "Georgi", "Ivanov")

	address := "Sofia, Vitosha 1"
	birthDate := "1990-12-24"
	res, err := uc.user.UpdateUser(context.Background(), user.ID, &dto.UpdateUserRequest{
		Address:   &address,
		BirthDate: &birthDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Elena", res.FirstName)
	assert.Equal(t, user.Email, res.Email)
	assert.Equal(t, address, res.Address)
	assert.Equal(t, birthDate, res.BirthDate)

	_, err = uc.user.UpdateUser(context.Background(), user.ID, &dto.UpdateUserRequest{Email: &other.Email})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = uc.user.UpdateUser(context.Background(), user.ID, &dto.UpdateUserRequest{Phone: &other.Phone})
	assert.ErrorIs(t, err, ErrPhoneExists)

	_, err = uc.user.UpdateUser(context.Background(), uuid.New(), &dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserRoles(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctorID := registerDoctor(t, uc, "drroles", false)
	patientID := registerPatient(t, uc, "patroles", "1234567890", doctorID)

	doctorRole := findRole(t, db, entity.RoleDoctor)
	patientRole := findRole(t, db, entity.RolePatient)
	auditor, err := uc.role.CreateRole(context.Background(), &dto.RoleRequest{RoleName: "ROLE_AUDITOR"})
	require.NoError(t, err)

	t.Run("patient cannot become a doctor", func(t *testing.T) {
		for _, ids := range [][]int{{doctorRole.ID}, {patientRole.ID, doctorRole.ID}} {
			_, err := uc.user.UpdateUserRoles(context.Background(), entity.Caller{UserID: &patientID}, patientID, &dto.UpdateUserRolesRequest{RoleIDs: ids})
			assert.ErrorIs(t, err, ErrRoleVariantMismatch)
			assert.ErrorIs(t, err, ErrValidation)
		}

		res, err := uc.auth.Login(context.Background(), &dto.LoginRequest{UsernameOrEmail: "patroles", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, []string{entity.RolePatient}, res.Authorities)
	})

	t.Run("doctor keeps the doctor role", func(t *testing.T) {
		_, err := uc.user.UpdateUserRoles(context.Background(), entity.Caller{}, doctorID, &dto.UpdateUserRolesRequest{RoleIDs: []int{auditor.ID}})
		assert.ErrorIs(t, err, ErrRoleVariantMismatch)

		_, err = uc.user.UpdateUserRoles(context.Background(), entity.Caller{}, doctorID, &dto.UpdateUserRolesRequest{RoleIDs: []int{doctorRole.ID, patientRole.ID}})
		assert.ErrorIs(t, err, ErrRoleVariantMismatch)
	})

	t.Run("extra roles next to the variant role", func(t *testing.T) {
		res, err := uc.user.UpdateUserRoles(context.Background(), entity.Caller{}, doctorID, &dto.UpdateUserRolesRequest{
			RoleIDs: []int{doctorRole.ID, auditor.ID, auditor.ID},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{entity.RoleDoctor, "ROLE_AUDITOR"}, res.Roles)
		assert.Equal(t, entity.UserTypeDoctor, res.Kind)

		var audit entity.AuditLog
		require.NoError(t, db.Where("action = ?", entity.AuditActionUserRolesUpdate).First(&audit).Error)
	})

	t.Run("user without a profile gets no variant role", func(t *testing.T) {
		plain := insertUser(t, db, "No", "Profile")
		_, err := uc.user.UpdateUserRoles(context.Background(), entity.Caller{}, plain.ID, &dto.UpdateUserRolesRequest{RoleIDs: []int{doctorRole.ID}})
		assert.ErrorIs(t, err, ErrRoleVariantMismatch)

		res, err := uc.user.UpdateUserRoles(context.Background(), entity.Caller{}, plain.ID, &dto.UpdateUserRolesRequest{RoleIDs: []int{auditor.ID}})
		require.NoError(t, err)
		assert.Equal(t, []string{"ROLE_AUDITOR"}, res.Roles)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := uc.user.UpdateUserRoles(context.Background(), entity.Caller{}, doctorID, &dto.UpdateUserRolesRequest{
			RoleIDs: []int{doctorRole.ID, 999},
		})
		assert.ErrorIs(t, err, ErrRoleNotFound)
	})
}
