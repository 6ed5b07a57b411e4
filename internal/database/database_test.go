package database

import (
	"testing"

	"vibematch/internal/config"
	"vibematch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestPersistentModelsMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(PersistentModels()...))

	for _, table := range []string{"users", "profiles", "locations", "gallery_photos"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s should exist", table)
	}

	// profile aggregate relations survive a migration round trip
	assert.True(t, db.Migrator().HasColumn(&models.Profile{}, "user_id"))
	assert.True(t, db.Migrator().HasColumn(&models.Location{}, "profile_id"))
	assert.True(t, db.Migrator().HasColumn(&models.GalleryPhoto{}, "profile_id"))
}
