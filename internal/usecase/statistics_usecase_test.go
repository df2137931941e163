package usecase

import (
	"context"
	"fmt"
	"testing"

	"clinic-records/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPatientCountByGPs(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	busy := insertDoctor(t, db, "DOC001", true)
	quiet := insertDoctor(t, db, "DOC002", true)
	insertDoctor(t, db, "DOC003", true)
	specialist := insertDoctor(t, db, "DOC004", false)

	egn := 1000000000
	addPatients := func(doctorID uuid.UUID, n int) {
		for i := 0; i < n; i++ {
			egn++
			insertPatient(t, db, fmt.Sprintf("%d", egn), doctorID)
		}
	}
	addPatients(busy.UserID, 5)
	addPatients(quiet.UserID, 3)
	addPatients(specialist.UserID, 2)

	res, err := uc.statistics.GetPatientCountByGPs(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Doctors, 3)
	counts := []int64{res.Doctors[0].PatientCount, res.Doctors[1].PatientCount, res.Doctors[2].PatientCount}
	assert.Equal(t, []int64{5, 3, 0}, counts)
	assert.Equal(t, "DOC003", res.Doctors[2].DoctorIdentity)
	assert.Equal(t, int64(8), res.Total)
	assert.True(t, decimal.RequireFromString("62.5").Equal(res.Doctors[0].Share))
	assert.True(t, decimal.RequireFromString("37.5").Equal(res.Doctors[1].Share))
	assert.True(t, res.Doctors[2].Share.IsZero())

	total, err := uc.statistics.GetTotalPatientCountByGPs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
}

func TestSharePercent(t *testing.T) {
	assert.True(t, sharePercent(1, 3).Equal(decimal.RequireFromString("33.33")))
	assert.True(t, sharePercent(2, 3).Equal(decimal.RequireFromString("66.67")))
	assert.True(t, sharePercent(5, 0).IsZero())
}

func TestGetVisitCountPerDoctor_SumsToTotal(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	a := insertDoctor(t, db, "DOC001", true)
	b := insertDoctor(t, db, "DOC002", false)
	insertDoctor(t, db, "DOC003", false)
	patient := insertPatient(t, db, "1234567890", a.UserID)

	insertExamination(t, db, a.UserID, patient.UserID, "2024-01-10")
	insertExamination(t, db, b.UserID, patient.UserID, "2024-01-11")
	insertExamination(t, db, b.UserID, patient.UserID, "2024-01-12")

	res, err := uc.statistics.GetVisitCountPerDoctor(context.Background())
	require.NoError(t, err)

	var sum int64
	for _, d := range res.Doctors {
		sum += d.VisitCount
	}
	assert.Equal(t, res.TotalExaminations, sum)
	assert.Equal(t, int64(3), res.TotalExaminations)
	require.Len(t, res.Doctors, 2)
	assert.Equal(t, "DOC002", res.Doctors[0].DoctorIdentity)
	assert.Equal(t, int64(2), res.Doctors[0].VisitCount)
}

func TestDiagnosisStatistics(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	doctor := insertDoctor(t, db, "DOC001", true)
	ana := insertPatient(t, db, "1111111111", doctor.UserID)
	boris := insertPatient(t, db, "2222222222", doctor.UserID)
	flu := insertDiagnosis(t, db, "Flu")
	cold := insertDiagnosis(t, db, "Cold")
	insertDiagnosis(t, db, "Unused")

	insertExamination(t, db, doctor.UserID, ana.UserID, "2024-02-01", flu)
	insertExamination(t, db, doctor.UserID, ana.UserID, "2024-02-08", flu, cold)
	insertExamination(t, db, doctor.UserID, boris.UserID, "2024-02-09", flu)

	t.Run("most frequent", func(t *testing.T) {
		rows, err := uc.statistics.GetMostFrequentDiagnoses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []dto.DiagnosisFrequencyResponse{
			{Diagnosis: "Flu", Occurrences: 3},
			{Diagnosis: "Cold", Occurrences: 1},
		}, rows)
	})

	t.Run("distinct patients per diagnosis", func(t *testing.T) {
		rows, err := uc.statistics.GetDiagnosisPatientStatistics(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []dto.DiagnosisPatientCountResponse{
			{Diagnosis: "Flu", PatientCount: 2},
			{Diagnosis: "Cold", PatientCount: 1},
		}, rows)
	})

	t.Run("patients by diagnosis are distinct", func(t *testing.T) {
		rows, err := uc.statistics.GetPatientsByDiagnosis(context.Background(), "Flu")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.ElementsMatch(t, []string{"1111111111", "2222222222"}, []string{rows[0].EGN, rows[1].EGN})
	})

	t.Run("blank diagnosis name", func(t *testing.T) {
		_, err := uc.statistics.GetPatientsByDiagnosis(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrDiagnosisNameRequired)
	})

	t.Run("unknown diagnosis name", func(t *testing.T) {
		rows, err := uc.statistics.GetPatientsByDiagnosis(context.Background(), "Plague")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestGetPeakSickLeaveMonth(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	t.Run("no data", func(t *testing.T) {
		res, err := uc.statistics.GetPeakSickLeaveMonth(context.Background(), 2024)
		require.NoError(t, err)
		assert.False(t, res.HasSickLeaves)
		assert.Equal(t, "No sick leave data available for year 2024", res.Message)
		assert.Zero(t, res.Month)
	})

	doctor := insertDoctor(t, db, "DOC001", true)
	patient := insertPatient(t, db, "1234567890", doctor.UserID)
	leave := func(date string) {
		exam := insertExamination(t, db, doctor.UserID, patient.UserID, date)
		insertSickLeave(t, db, exam.ID, date, date)
	}
	leave("2024-03-02")
	leave("2024-03-20")
	leave("2024-01-05")
	leave("2024-01-31")
	leave("2023-12-31")
	leave("2025-01-01")

	t.Run("tie goes to the earliest month", func(t *testing.T) {
		res, err := uc.statistics.GetPeakSickLeaveMonth(context.Background(), 2024)
		require.NoError(t, err)
		assert.True(t, res.HasSickLeaves)
		assert.Equal(t, 1, res.Month)
		assert.Equal(t, "January", res.MonthName)
		assert.Equal(t, 2, res.Count)
		assert.Equal(t, "In January 2024, the most sick leaves were issued for that year - total of 2 sick leaves.", res.Summary)
	})

	t.Run("invalid year", func(t *testing.T) {
		_, err := uc.statistics.GetPeakSickLeaveMonth(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidYear)
	})
}

func TestGetDoctorsWithMostSickLeaves(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	t.Run("no sick leaves", func(t *testing.T) {
		rows, err := uc.statistics.GetDoctorsWithMostSickLeaves(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, noDataAvailable, rows[0].FullName)
		assert.Zero(t, rows[0].SickLeaveCount)
		assert.False(t, rows[0].HasSickLeaves)
		assert.Nil(t, rows[0].DoctorID)
	})

	gp := insertDoctor(t, db, "DOC000", true)
	patient := insertPatient(t, db, "1234567890", gp.UserID)
	for i, n := range []int{1, 4, 2, 3} {
		doctor := insertDoctor(t, db, fmt.Sprintf("DOC%03d", i+1), false)
		for j := 0; j < n; j++ {
			exam := insertExamination(t, db, doctor.UserID, patient.UserID, "2024-05-01")
			insertSickLeave(t, db, exam.ID, "2024-05-01", "2024-05-03")
		}
	}

	t.Run("top three", func(t *testing.T) {
		rows, err := uc.statistics.GetDoctorsWithMostSickLeaves(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, topSickLeaveDoctors)
		assert.Equal(t, []int64{4, 3, 2}, []int64{rows[0].SickLeaveCount, rows[1].SickLeaveCount, rows[2].SickLeaveCount})
		assert.Equal(t, "DOC002", rows[0].DoctorIdentity)
		assert.Equal(t, "Doc DOC002", rows[0].FullName)
		assert.True(t, rows[0].HasSickLeaves)
	})
}

func TestGetExaminationsByPeriod(t *testing.T) {
	db := setupTestDB(t)
	uc := newTestUsecases(db)

	a := insertDoctor(t, db, "DOC001", true)
	b := insertDoctor(t, db, "DOC002", false)
	patient := insertPatient(t, db, "1234567890", a.UserID)

	insertExamination(t, db, a.UserID, patient.UserID, "2024-03-01")
	insertExamination(t, db, b.UserID, patient.UserID, "2024-03-15")
	insertExamination(t, db, a.UserID, patient.UserID, "2024-03-31")
	insertExamination(t, db, a.UserID, patient.UserID, "2024-04-01")

	t.Run("inclusive bounds, newest first", func(t *testing.T) {
		res, err := uc.statistics.GetExaminationsByPeriod(context.Background(), "2024-03-01", "2024-03-31", nil)
		require.NoError(t, err)
		require.Equal(t, 3, res.Total)
		assert.Equal(t, "2024-03-31", res.Examinations[0].ExaminationDate)
		assert.Equal(t, "2024-03-15", res.Examinations[1].ExaminationDate)
		assert.Equal(t, "2024-03-01", res.Examinations[2].ExaminationDate)
	})

	t.Run("single doctor", func(t *testing.T) {
		res, err := uc.statistics.GetExaminationsByPeriod(context.Background(), "2024-03-01", "2024-04-30", &a.UserID)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		for _, e := range res.Examinations {
			assert.Equal(t, a.UserID, e.Doctor.ID)
		}
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := uc.statistics.GetExaminationsByPeriod(context.Background(), "2024-04-01", "2024-03-01", nil)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := uc.statistics.GetExaminationsByPeriod(context.Background(), "03/01/2024", "2024-03-31", nil)
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		unknown := uuid.New()
		_, err := uc.statistics.GetExaminationsByPeriod(context.Background(), "2024-03-01", "2024-03-31", &unknown)
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}
