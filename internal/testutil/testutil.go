// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"vibematch/internal/database"
	"vibematch/internal/uploads"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory sqlite database with the full schema
// migrated. Each call gets its own database so parallel tests do not share
// state.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// UploaderStub is an in-memory uploads.Uploader. It returns one photo per
// file, preserving order, or Err when set.
type UploaderStub struct {
	Err   error
	Calls int
}

func (u *UploaderStub) Upload(_ context.Context, files []uploads.File) ([]uploads.UploadedPhoto, error) {
	u.Calls++
	if u.Err != nil {
		return nil, u.Err
	}
	photos := make([]uploads.UploadedPhoto, 0, len(files))
	for i, f := range files {
		photos = append(photos, uploads.UploadedPhoto{
			URL:      fmt.Sprintf("https://cdn.test/%d-%s", i, f.Name),
			PublicID: fmt.Sprintf("stub-%d-%s", i, f.Name),
		})
	}
	return photos, nil
}
