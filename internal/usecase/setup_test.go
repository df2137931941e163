package usecase

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"clinic-records/config"
	"clinic-records/internal/domain/entity"
	"clinic-records/internal/infrastructure/database"
	"clinic-records/internal/repository"
	"clinic-records/internal/service"
	"clinic-records/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.Seed(db))

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testUsecases wires every usecase against one database the way the server does.
type testUsecases struct {
	auth        AuthUsecase
	doctor      DoctorProfileUsecase
	patient     PatientProfileUsecase
	examination ExaminationUsecase
	sickLeave   SickLeaveUsecase
	statistics  StatisticsUsecase
	user        UserUsecase

	diagnosis      DiagnosisUsecase
	specialization SpecializationUsecase
	role           RoleUsecase
}

func newTestUsecases(db *gorm.DB) testUsecases {
	log := testLogger()

	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	specializationRepo := repository.NewSpecializationRepository()
	diagnosisRepo := repository.NewDiagnosisRepository()
	examinationRepo := repository.NewExaminationRepository()
	sickLeaveRepo := repository.NewSickLeaveRepository()
	auditService := service.NewAuditService(db, log, repository.NewAuditLogRepository())
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})

	return testUsecases{
		auth:        NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo, jwtService, auditService),
		doctor:      NewDoctorProfileUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo, examinationRepo, auditService),
		patient:     NewPatientProfileUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo, examinationRepo, sickLeaveRepo, auditService),
		examination: NewExaminationUsecase(db, log, examinationRepo, doctorProfileRepo, patientProfileRepo, diagnosisRepo, sickLeaveRepo, auditService),
		sickLeave:   NewSickLeaveUsecase(db, log, sickLeaveRepo, examinationRepo, auditService),
		statistics:  NewStatisticsUsecase(db, log, repository.NewStatisticsRepository(), doctorProfileRepo),
		user:        NewUserUsecase(db, log, userRepo, roleRepo, auditService),

		diagnosis:      NewDiagnosisUsecase(db, log, diagnosisRepo),
		specialization: NewSpecializationUsecase(db, log, specializationRepo),
		role:           NewRoleUsecase(db, log, roleRepo),
	}
}

// Fixtures below insert rows directly, skipping password hashing and the usecase checks.

func insertUser(t *testing.T, db *gorm.DB, firstName, lastName string) entity.User {
	suffix := uuid.NewString()[:8]
	user := entity.User{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: time.Date(1980, time.May, 1, 0, 0, 0, 0, time.UTC),
		Username:  "user_" + suffix,
		Email:     suffix + "@clinic.test",
		Password:  "x",
		Phone:     "+359" + suffix,
		Gender:    entity.GenderOther,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&user).Error)
	return user
}

func insertDoctor(t *testing.T, db *gorm.DB, identity string, isGP bool) entity.DoctorProfile {
	user := insertUser(t, db, "Doc", identity)
	profile := entity.DoctorProfile{UserID: user.ID, DoctorIdentity: identity, IsGP: isGP}
	require.NoError(t, db.Omit(clause.Associations).Create(&profile).Error)
	profile.User = user
	return profile
}

func insertPatient(t *testing.T, db *gorm.DB, egn string, doctorID uuid.UUID) entity.PatientProfile {
	user := insertUser(t, db, "Pat", egn)
	profile := entity.PatientProfile{UserID: user.ID, EGN: egn, PersonalDoctorID: doctorID}
	require.NoError(t, db.Omit(clause.Associations).Create(&profile).Error)
	profile.User = user
	return profile
}

func insertDiagnosis(t *testing.T, db *gorm.DB, name string) entity.Diagnosis {
	diagnosis := entity.Diagnosis{Name: name}
	require.NoError(t, db.Create(&diagnosis).Error)
	return diagnosis
}

func insertExamination(t *testing.T, db *gorm.DB, doctorID, patientID uuid.UUID, date string, diagnoses ...entity.Diagnosis) entity.Examination {
	examination := entity.Examination{
		ExaminationDate: mustDate(t, date),
		DoctorID:        doctorID,
		PatientID:       patientID,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&examination).Error)
	for i := range diagnoses {
		require.NoError(t, db.Model(&examination).Association("Diagnoses").Append(&diagnoses[i]))
	}
	return examination
}

func insertSickLeave(t *testing.T, db *gorm.DB, examinationID int, start, end string) entity.SickLeave {
	sickLeave := entity.SickLeave{
		StartDate:     mustDate(t, start),
		EndDate:       mustDate(t, end),
		ExaminationID: examinationID,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&sickLeave).Error)
	return sickLeave
}

func findRole(t *testing.T, db *gorm.DB, name string) entity.Role {
	var role entity.Role
	require.NoError(t, db.Where("role_name = ?", name).First(&role).Error)
	return role
}

func mustDate(t *testing.T, value string) time.Time {
	d, err := parseDate(value)
	require.NoError(t, err)
	return d
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
