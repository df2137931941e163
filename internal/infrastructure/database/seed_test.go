package database

import (
	"fmt"
	"testing"
	"time"

	"clinic-records/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:testdb_seed_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	return db
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var roles []entity.Role
	require.NoError(t, db.Order("role_name ASC").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, entity.RoleDoctor, roles[0].RoleName)
	assert.Equal(t, entity.RolePatient, roles[1].RoleName)

	var gp int64
	require.NoError(t, db.Model(&entity.Specialization{}).Where("name = ?", entity.SpecializationGP).Count(&gp).Error)
	assert.Equal(t, int64(1), gp)
}
