package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinic-records/internal/delivery/dto"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	topSickLeaveDoctors = 3
	notAvailable        = "N/A"
	noDataAvailable     = "No data available"
)

type StatisticsUsecase interface {
	GetPatientCountByGPs(ctx context.Context) (*dto.GPPatientStatisticsResponse, error)
	GetTotalPatientCountByGPs(ctx context.Context) (int64, error)
	GetVisitCountPerDoctor(ctx context.Context) (*dto.VisitStatisticsResponse, error)
	GetMostFrequentDiagnoses(ctx context.Context) ([]dto.DiagnosisFrequencyResponse, error)
	GetDiagnosisPatientStatistics(ctx context.Context) ([]dto.DiagnosisPatientCountResponse, error)
	GetPatientsByDiagnosis(ctx context.Context, diagnosisName string) ([]dto.PatientWithDiagnosisResponse, error)
	GetDoctorsWithMostSickLeaves(ctx context.Context) ([]dto.DoctorSickLeaveCountResponse, error)
	GetPeakSickLeaveMonth(ctx context.Context, year int) (*dto.PeakSickLeaveMonthResponse, error)
	GetExaminationsByPeriod(ctx context.Context, startDate, endDate string, doctorID *uuid.UUID) (*dto.ExaminationListResponse, error)
}

type statisticsUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	statisticsRepo    repository.StatisticsRepository
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewStatisticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	statisticsRepo repository.StatisticsRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
) StatisticsUsecase {
	return &statisticsUsecase{
		db:                db,
		log:               log,
		statisticsRepo:    statisticsRepo,
		doctorProfileRepo: doctorProfileRepo,
	}
}

// GetPatientCountByGPs lists every GP with the number of patients registered with them and
// that number as a percentage of all GP-registered patients.
func (u *statisticsUsecase) GetPatientCountByGPs(ctx context.Context) (*dto.GPPatientStatisticsResponse, error) {
	rows, err := u.statisticsRepo.PatientCountByGPs(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients by GP: %+v", err)
		return nil, err
	}

	total, err := u.statisticsRepo.TotalPatientsWithGP(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients with GP: %+v", err)
		return nil, err
	}

	doctors := make([]dto.GPPatientCountResponse, len(rows))
	for i, row := range rows {
		doctors[i] = dto.GPPatientCountResponse{
			DoctorID:       row.DoctorID,
			DoctorIdentity: row.DoctorIdentity,
			PatientCount:   row.PatientCount,
			Share:          sharePercent(row.PatientCount, total),
		}
	}

	return &dto.GPPatientStatisticsResponse{
		Doctors: doctors,
		Total:   total,
	}, nil
}

func (u *statisticsUsecase) GetTotalPatientCountByGPs(ctx context.Context) (int64, error) {
	total, err := u.statisticsRepo.TotalPatientsWithGP(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients with GP: %+v", err)
		return 0, err
	}
	return total, nil
}

func (u *statisticsUsecase) GetVisitCountPerDoctor(ctx context.Context) (*dto.VisitStatisticsResponse, error) {
	rows, err := u.statisticsRepo.VisitCountPerDoctor(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count visits per doctor: %+v", err)
		return nil, err
	}

	total, err := u.statisticsRepo.CountExaminations(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count examinations: %+v", err)
		return nil, err
	}

	doctors := make([]dto.DoctorVisitCountResponse, len(rows))
	for i, row := range rows {
		doctors[i] = dto.DoctorVisitCountResponse{
			DoctorID:       row.DoctorID,
			DoctorIdentity: row.DoctorIdentity,
			VisitCount:     row.VisitCount,
		}
	}

	return &dto.VisitStatisticsResponse{
		Doctors:           doctors,
		TotalExaminations: total,
	}, nil
}

func (u *statisticsUsecase) GetMostFrequentDiagnoses(ctx context.Context) ([]dto.DiagnosisFrequencyResponse, error) {
	rows, err := u.statisticsRepo.DiagnosisFrequency(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count diagnosis frequency: %+v", err)
		return nil, err
	}

	responses := make([]dto.DiagnosisFrequencyResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.DiagnosisFrequencyResponse{
			Diagnosis:   row.Diagnosis,
			Occurrences: row.Occurrences,
		}
	}
	return responses, nil
}

func (u *statisticsUsecase) GetDiagnosisPatientStatistics(ctx context.Context) ([]dto.DiagnosisPatientCountResponse, error) {
	rows, err := u.statisticsRepo.DiagnosisPatientCounts(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients per diagnosis: %+v", err)
		return nil, err
	}

	responses := make([]dto.DiagnosisPatientCountResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.DiagnosisPatientCountResponse{
			Diagnosis:    row.Diagnosis,
			PatientCount: row.PatientCount,
		}
	}
	return responses, nil
}

func (u *statisticsUsecase) GetPatientsByDiagnosis(ctx context.Context, diagnosisName string) ([]dto.PatientWithDiagnosisResponse, error) {
	if strings.TrimSpace(diagnosisName) == "" {
		return nil, ErrDiagnosisNameRequired
	}

	rows, err := u.statisticsRepo.PatientsByDiagnosis(ctx, u.db, diagnosisName)
	if err != nil {
		u.log.Warnf("Failed to find patients by diagnosis: %+v", err)
		return nil, err
	}

	responses := make([]dto.PatientWithDiagnosisResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.PatientWithDiagnosisResponse{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			EGN:       row.EGN,
		}
	}
	return responses, nil
}

// GetDoctorsWithMostSickLeaves returns at most three doctors. When no sick leave exists the
// result is a single placeholder entry with HasSickLeaves unset.
func (u *statisticsUsecase) GetDoctorsWithMostSickLeaves(ctx context.Context) ([]dto.DoctorSickLeaveCountResponse, error) {
	rows, err := u.statisticsRepo.DoctorsBySickLeaveCount(ctx, u.db, topSickLeaveDoctors)
	if err != nil {
		u.log.Warnf("Failed to count sick leaves per doctor: %+v", err)
		return nil, err
	}

	if len(rows) == 0 {
		return []dto.DoctorSickLeaveCountResponse{{
			FullName:       noDataAvailable,
			SickLeaveCount: 0,
			HasSickLeaves:  false,
		}}, nil
	}

	responses := make([]dto.DoctorSickLeaveCountResponse, len(rows))
	for i, row := range rows {
		doctorID := row.DoctorID
		firstName := orNotAvailable(row.FirstName)
		lastName := orNotAvailable(row.LastName)
		responses[i] = dto.DoctorSickLeaveCountResponse{
			DoctorID:       &doctorID,
			DoctorIdentity: row.DoctorIdentity,
			FirstName:      firstName,
			LastName:       lastName,
			FullName:       firstName + " " + lastName,
			SickLeaveCount: row.SickLeaveCount,
			HasSickLeaves:  row.SickLeaveCount > 0,
		}
	}
	return responses, nil
}

// GetPeakSickLeaveMonth finds the month of year in which the most sick leaves started.
// Ties go to the earliest month.
func (u *statisticsUsecase) GetPeakSickLeaveMonth(ctx context.Context, year int) (*dto.PeakSickLeaveMonthResponse, error) {
	if year < 1 || year > 9999 {
		return nil, ErrInvalidYear
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	dates, err := u.statisticsRepo.SickLeaveStartDates(ctx, u.db, from, to)
	if err != nil {
		u.log.Warnf("Failed to find sick leave start dates: %+v", err)
		return nil, err
	}

	var perMonth [13]int
	for _, date := range dates {
		perMonth[entity.DateOnly(date).Month()]++
	}

	peak := time.Month(0)
	for m := time.January; m <= time.December; m++ {
		if perMonth[m] > 0 && (peak == 0 || perMonth[m] > perMonth[peak]) {
			peak = m
		}
	}

	if peak == 0 {
		return &dto.PeakSickLeaveMonthResponse{
			Year:          year,
			Message:       fmt.Sprintf("No sick leave data available for year %d", year),
			HasSickLeaves: false,
		}, nil
	}

	count := perMonth[peak]
	return &dto.PeakSickLeaveMonthResponse{
		Year:          year,
		Month:         int(peak),
		MonthName:     peak.String(),
		Count:         count,
		Summary:       fmt.Sprintf("In %s %d, the most sick leaves were issued for that year - total of %d sick leaves.", peak.String(), year, count),
		HasSickLeaves: true,
	}, nil
}

// GetExaminationsByPeriod lists examinations dated within [startDate, endDate], optionally
// limited to one doctor.
func (u *statisticsUsecase) GetExaminationsByPeriod(ctx context.Context, startDate, endDate string, doctorID *uuid.UUID) (*dto.ExaminationListResponse, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	if doctorID != nil {
		doctor, err := u.doctorProfileRepo.FindByUserID(ctx, u.db, *doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
	}

	examinations, err := u.statisticsRepo.ExaminationsByPeriod(ctx, u.db, start, end, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find examinations by period: %+v", err)
		return nil, err
	}

	return examinationList(examinations), nil
}

// sharePercent is part/total as a percentage rounded to two decimals. Zero when total is zero.
func sharePercent(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(total), 2)
}

func orNotAvailable(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return notAvailable
	}
	return *value
}
