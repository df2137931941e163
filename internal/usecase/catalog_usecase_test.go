package usecase

import (
	"context"
	"testing"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosisCRUD(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	created, err := uc.diagnosis.CreateDiagnosis(context.Background(), &dto.DiagnosisRequest{Name: "Flu", Description: "Influenza"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	t.Run("partial update", func(t *testing.T) {
		name := "Influenza A"
		res, err := uc.diagnosis.UpdateDiagnosis(context.Background(), created.ID, &dto.UpdateDiagnosisRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Influenza A", res.Name)
		assert.Equal(t, "Influenza", res.Description)

		got, err := uc.diagnosis.GetDiagnosis(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Influenza A", got.Name)
	})

	t.Run("unknown diagnosis", func(t *testing.T) {
		_, err := uc.diagnosis.GetDiagnosis(context.Background(), 999)
		assert.ErrorIs(t, err, ErrDiagnosisNotFound)

		_, err = uc.diagnosis.UpdateDiagnosis(context.Background(), 999, &dto.UpdateDiagnosisRequest{})
		assert.ErrorIs(t, err, ErrDiagnosisNotFound)

		assert.ErrorIs(t, uc.diagnosis.DeleteDiagnosis(context.Background(), 999), ErrDiagnosisNotFound)
	})

	list, err := uc.diagnosis.GetAllDiagnoses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestDeleteDiagnosis_RemovesExaminationLinks(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)
	flu := insertDiagnosis(t, db, "Flu")
	cold := insertDiagnosis(t, db, "Cold")
	exam := insertExamination(t, db, doctor.UserID, patient.UserID, "2024-06-01", flu, cold)

	require.NoError(t, uc.diagnosis.DeleteDiagnosis(context.Background(), flu.ID))

	var linked []int
	require.NoError(t, db.Table("examination_diagnoses").Where("examination_id = ?", exam.ID).Pluck("diagnosis_id", &linked).Error)
	assert.Equal(t, []int{cold.ID}, linked)
	assert.Equal(t, int64(1), countRows(t, db, &entity.Examination{}))
	assert.Equal(t, int64(1), countRows(t, db, &entity.Diagnosis{}))
}

func TestSpecializationCRUD(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	var gp entity.Specialization
	require.NoError(t, db.Where("name = ?", entity.SpecializationGP).First(&gp).Error)

	cardiology, err := uc.specialization.CreateSpecialization(context.Background(), &dto.SpecializationRequest{Name: "Cardiology"})
	require.NoError(t, err)
	_, err = uc.specialization.CreateSpecialization(context.Background(), &dto.SpecializationRequest{Name: "Cardiology"})
	assert.ErrorIs(t, err, ErrSpecializationNameExists)

	t.Run("list without GP", func(t *testing.T) {
		all, err := uc.specialization.GetAllSpecializations(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, all.Total)

		withoutGP, err := uc.specialization.GetSpecializationsWithoutGP(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, withoutGP.Total)
		assert.Equal(t, "Cardiology", withoutGP.Specializations[0].Name)
	})

	t.Run("GP cannot be renamed or deleted", func(t *testing.T) {
		name := "Family medicine"
		_, err := uc.specialization.UpdateSpecialization(context.Background(), gp.ID, &dto.UpdateSpecializationRequest{Name: &name})
		assert.ErrorIs(t, err, ErrSystemSpecialization)
		assert.ErrorIs(t, err, ErrConflict)

		description := "General practitioner"
		res, err := uc.specialization.UpdateSpecialization(context.Background(), gp.ID, &dto.UpdateSpecializationRequest{Description: &description})
		require.NoError(t, err)
		assert.Equal(t, entity.SpecializationGP, res.Name)

		assert.ErrorIs(t, uc.specialization.DeleteSpecialization(context.Background(), gp.ID), ErrSystemSpecialization)

		// GP doctors still register after the attempts above.
		registerDoctor(t, uc, "gpdoc", true)
	})

	t.Run("delete detaches doctors", func(t *testing.T) {
		doctorID := registerDoctor(t, uc, "cardio", false)
		ids := []int{cardiology.ID}
		_, err := uc.doctor.UpdateDoctor(context.Background(), entity.Caller{}, doctorID, &dto.UpdateDoctorRequest{SpecializationIDs: &ids})
		require.NoError(t, err)

		require.NoError(t, uc.specialization.DeleteSpecialization(context.Background(), cardiology.ID))

		var links int64
		require.NoError(t, db.Table("doctor_specializations").Where("specialization_id = ?", cardiology.ID).Count(&links).Error)
		assert.Zero(t, links)

		_, err = uc.specialization.GetSpecialization(context.Background(), cardiology.ID)
		assert.ErrorIs(t, err, ErrSpecializationNotFound)
		assert.ErrorIs(t, uc.specialization.DeleteSpecialization(context.Background(), cardiology.ID), ErrSpecializationNotFound)
	})
}

func TestRoleCRUD(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)
	doctorRole := findRole(t, db, entity.RoleDoctor)
	patientRole := findRole(t, db, entity.RolePatient)

	t.Run("built-in roles cannot be renamed or deleted", func(t *testing.T) {
		for _, role := range []entity.Role{doctorRole, patientRole} {
			name := "ROLE_RENAMED"
			_, err := uc.role.UpdateRole(context.Background(), role.ID, &dto.UpdateRoleRequest{RoleName: &name})
			assert.ErrorIs(t, err, ErrSystemRole)

			assert.ErrorIs(t, uc.role.DeleteRole(context.Background(), role.ID), ErrSystemRole)
		}

		registerDoctor(t, uc, "stilldoc", false)
		assert.Equal(t, doctorRole.RoleName, findRole(t, db, entity.RoleDoctor).RoleName)
	})

	t.Run("custom role lifecycle", func(t *testing.T) {
		created, err := uc.role.CreateRole(context.Background(), &dto.RoleRequest{RoleName: "ROLE_NURSE"})
		require.NoError(t, err)

		_, err = uc.role.CreateRole(context.Background(), &dto.RoleRequest{RoleName: "ROLE_NURSE"})
		assert.ErrorIs(t, err, ErrRoleNameExists)

		name := "ROLE_HEAD_NURSE"
		res, err := uc.role.UpdateRole(context.Background(), created.ID, &dto.UpdateRoleRequest{RoleName: &name})
		require.NoError(t, err)
		assert.Equal(t, "ROLE_HEAD_NURSE", res.RoleName)

		taken := entity.RoleDoctor
		_, err = uc.role.UpdateRole(context.Background(), created.ID, &dto.UpdateRoleRequest{RoleName: &taken})
		assert.ErrorIs(t, err, ErrRoleNameExists)

		user := insertUser(t, db, "Nadia", "Koleva")
		_, err = uc.user.UpdateUserRoles(context.Background(), entity.Caller{}, user.ID, &dto.UpdateUserRolesRequest{RoleIDs: []int{created.ID}})
		require.NoError(t, err)

		require.NoError(t, uc.role.DeleteRole(context.Background(), created.ID))

		got, err := uc.user.GetUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Roles)

		_, err = uc.role.GetRole(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrRoleNotFound)
		assert.ErrorIs(t, uc.role.DeleteRole(context.Background(), created.ID), ErrRoleNotFound)
	})

	list, err := uc.role.GetAllRoles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}
