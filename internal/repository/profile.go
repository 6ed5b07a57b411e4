// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"vibematch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profile aggregates.
// Partial-update and upsert semantics live in the service layer; the
// repository exposes the primitive reads and writes plus transaction scoping.
type ProfileRepository interface {
	// GetByUserID loads the full aggregate (Location, Gallery, User) for the
	// given user, or (nil, nil) when no profile exists.
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	// GetByUserIDLocked is GetByUserID with a row lock on the profile when
	// the dialect supports it. Call inside a transaction.
	GetByUserIDLocked(ctx context.Context, userID uint) (*models.Profile, error)
	// Create persists a new profile with its nested Location and Gallery.
	Create(ctx context.Context, profile *models.Profile) error
	// UpdateFields writes only the named columns from the given profile value.
	UpdateFields(ctx context.Context, profileID uint, profile models.Profile, columns []string) error
	// ReplaceLocation overwrites every Location field for the profile,
	// keeping the existing row (update-in-place).
	ReplaceLocation(ctx context.Context, profileID uint, loc models.Location) error
	// AppendPhotos adds photos to the gallery. Existing rows are never touched.
	AppendPhotos(ctx context.Context, profileID uint, photos []models.GalleryPhoto) error
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) ProfileRepository
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) WithTx(tx *gorm.DB) ProfileRepository {
	return &profileRepository{db: tx}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return r.get(ctx, userID, false)
}

func (r *profileRepository) GetByUserIDLocked(ctx context.Context, userID uint) (*models.Profile, error) {
	return r.get(ctx, userID, true)
}

func (r *profileRepository) get(ctx context.Context, userID uint, lock bool) (*models.Profile, error) {
	query := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Gallery", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("User").
		Where("user_id = ?", userID)
	if lock && r.db.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var profile models.Profile
	if err := query.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Profile already exists for user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) UpdateFields(ctx context.Context, profileID uint, profile models.Profile, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", profileID).
		Select(columns).
		Updates(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) ReplaceLocation(ctx context.Context, profileID uint, loc models.Location) error {
	err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("profile_id = ?", profileID).
		Select("Longitude", "Latitude", "City", "State", "Country", "Range").
		Updates(models.Location{
			Longitude: loc.Longitude,
			Latitude:  loc.Latitude,
			City:      loc.City,
			State:     loc.State,
			Country:   loc.Country,
			Range:     loc.Range,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) AppendPhotos(ctx context.Context, profileID uint, photos []models.GalleryPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	for i := range photos {
		photos[i].ProfileID = profileID
	}
	if err := r.db.WithContext(ctx).Create(&photos).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite phrasing for tests.
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
