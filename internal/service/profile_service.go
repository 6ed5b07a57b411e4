// Package service implements the application's business rules.
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"vibematch/internal/cache"
	"vibematch/internal/middleware"
	"vibematch/internal/models"
	"vibematch/internal/repository"
	"vibematch/internal/uploads"
	"vibematch/internal/validation"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProfileFields carries the raw form values of a create or update request.
// Empty string means the field was not supplied.
type ProfileFields struct {
	Gender    string
	DOB       string
	Hobbies   string // comma-separated
	Bio       string
	Longitude string
	Latitude  string
	City      string
	State     string
	Country   string
	Range     string
}

// ProfileService owns create/read/update of the profile aggregate: the
// Profile row, its Location (always replaced wholesale) and its append-only
// Gallery.
type ProfileService struct {
	db       *gorm.DB
	profiles repository.ProfileRepository
	users    repository.UserRepository
	uploader uploads.Uploader
	redis    *redis.Client
}

// NewProfileService builds the service. The db handle is used for
// transaction scoping; redis may be nil to disable caching.
func NewProfileService(db *gorm.DB, profiles repository.ProfileRepository, users repository.UserRepository, uploader uploads.Uploader, redisClient *redis.Client) *ProfileService {
	return &ProfileService{
		db:       db,
		profiles: profiles,
		users:    users,
		uploader: uploader,
		redis:    redisClient,
	}
}

// Create is the create-or-update entry point, keyed on userID. The first
// call creates the Profile together with its Location and Gallery; a later
// call for the same user falls through to the update branch of the upsert,
// so creates are idempotent rather than conflicting.
func (s *ProfileService) Create(ctx context.Context, userID uint, fields ProfileFields, files []uploads.File) (*models.ProfileAggregate, error) {
	err := validation.RequireFields(
		map[string]string{
			"gender": fields.Gender,
			"dob":    fields.DOB,
			"bio":    fields.Bio,
		},
		validation.Requirement{Field: "gender", Label: "Gender"},
		validation.Requirement{Field: "dob", Label: "Date of Birth"},
		validation.Requirement{Field: "bio", Label: "Bio"},
	)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, models.NewBadRequestError("No photos uploaded")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}

	dob, err := parseDate(fields.DOB)
	if err != nil {
		return nil, err
	}
	location, err := parseLocation(fields)
	if err != nil {
		return nil, err
	}
	hobbies := NormalizeHobbies(fields.Hobbies)

	photos, err := s.uploadPhotos(ctx, files)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.profiles.WithTx(tx)
		existing, err := repo.GetByUserIDLocked(ctx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			profile := &models.Profile{
				UserID:      userID,
				Gender:      models.Gender(fields.Gender),
				DateOfBirth: dob,
				Bio:         fields.Bio,
				Hobbies:     hobbies,
				Location:    &location,
				Gallery:     toGallery(photos),
			}
			return repo.Create(ctx, profile)
		}
		return s.applyPartial(ctx, repo, existing, fields, photos)
	})
	if err != nil {
		return nil, err
	}

	middleware.ProfileWrites.WithLabelValues("create").Inc()
	cache.InvalidateProfile(ctx, s.redis, userID)
	return s.loadAggregate(ctx, userID)
}

// Get returns the aggregate for userID, serving repeated reads from cache.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.ProfileAggregate, error) {
	var aggregate models.ProfileAggregate
	err := cache.Aside(ctx, s.redis, cache.ProfileKey(userID), &aggregate, cache.ProfileTTL, func() error {
		profile, err := s.profiles.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if profile == nil {
			return models.NewNotFoundError("Profile not found")
		}
		aggregate = *profile.Aggregate()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &aggregate, nil
}

// Update applies a partial update: provided fields are written, absent
// fields left untouched. Location is replaced wholesale when any geo field
// is supplied and left unchanged otherwise. Uploaded photos are appended to
// the gallery. The read and the writes share one transaction.
func (s *ProfileService) Update(ctx context.Context, userID uint, fields ProfileFields, files []uploads.File) (*models.ProfileAggregate, error) {
	if fields.Gender == "" && fields.DOB == "" && fields.Hobbies == "" && fields.Bio == "" && len(files) == 0 {
		return nil, models.NewBadRequestError("At least one required field is missing")
	}

	var photos []uploads.UploadedPhoto
	if len(files) > 0 {
		var err error
		photos, err = s.uploadPhotos(ctx, files)
		if err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.profiles.WithTx(tx)
		existing, err := repo.GetByUserIDLocked(ctx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return models.NewBadRequestError("Profile not found")
		}
		return s.applyPartial(ctx, repo, existing, fields, photos)
	})
	if err != nil {
		return nil, err
	}

	middleware.ProfileWrites.WithLabelValues("update").Inc()
	cache.InvalidateProfile(ctx, s.redis, userID)
	return s.loadAggregate(ctx, userID)
}

// applyPartial is the shared update branch used by Update and by Create when
// a profile already exists.
func (s *ProfileService) applyPartial(ctx context.Context, repo repository.ProfileRepository, existing *models.Profile, fields ProfileFields, photos []uploads.UploadedPhoto) error {
	var patch models.Profile
	var columns []string

	if fields.Gender != "" {
		patch.Gender = models.Gender(fields.Gender)
		columns = append(columns, "gender")
	}
	if fields.DOB != "" {
		dob, err := parseDate(fields.DOB)
		if err != nil {
			return err
		}
		patch.DateOfBirth = dob
		columns = append(columns, "date_of_birth")
	}
	if fields.Hobbies != "" {
		patch.Hobbies = NormalizeHobbies(fields.Hobbies)
		columns = append(columns, "hobbies")
	}
	if fields.Bio != "" {
		patch.Bio = fields.Bio
		columns = append(columns, "bio")
	}

	if err := repo.UpdateFields(ctx, existing.ID, patch, columns); err != nil {
		return err
	}

	if hasGeoFields(fields) {
		location, err := parseLocation(fields)
		if err != nil {
			return err
		}
		if err := repo.ReplaceLocation(ctx, existing.ID, location); err != nil {
			return err
		}
	}

	if len(photos) > 0 {
		if err := repo.AppendPhotos(ctx, existing.ID, toGallery(photos)); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProfileService) loadAggregate(ctx context.Context, userID uint) (*models.ProfileAggregate, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile not found")
	}
	return profile.Aggregate(), nil
}

func (s *ProfileService) uploadPhotos(ctx context.Context, files []uploads.File) ([]uploads.UploadedPhoto, error) {
	photos, err := s.uploader.Upload(ctx, files)
	if err != nil {
		middleware.PhotoUploads.WithLabelValues("error").Inc()
		// Unclassified on purpose: upload failures surface as the formatter's
		// 500 default.
		return nil, err
	}
	middleware.PhotoUploads.WithLabelValues("success").Inc()
	return photos, nil
}

// NormalizeHobbies splits a comma-separated hobby list into uppercase
// trimmed tokens, dropping empty entries.
func NormalizeHobbies(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	hobbies := make([]string, 0, len(parts))
	for _, p := range parts {
		token := strings.ToUpper(strings.TrimSpace(p))
		if token != "" {
			hobbies = append(hobbies, token)
		}
	}
	return hobbies
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, models.NewBadRequestError("Invalid date of birth")
}

func hasGeoFields(fields ProfileFields) bool {
	return fields.Longitude != "" || fields.Latitude != "" ||
		fields.City != "" || fields.State != "" ||
		fields.Country != "" || fields.Range != ""
}

// parseLocation builds the full Location replacement value. Absent numeric
// fields become zero; malformed ones are rejected rather than stored.
func parseLocation(fields ProfileFields) (models.Location, error) {
	var location models.Location

	if fields.Longitude != "" {
		longitude, err := strconv.ParseFloat(fields.Longitude, 64)
		if err != nil {
			return models.Location{}, models.NewBadRequestError("Invalid longitude")
		}
		location.Longitude = longitude
	}
	if fields.Latitude != "" {
		latitude, err := strconv.ParseFloat(fields.Latitude, 64)
		if err != nil {
			return models.Location{}, models.NewBadRequestError("Invalid latitude")
		}
		location.Latitude = latitude
	}
	if fields.Range != "" {
		rng, err := strconv.Atoi(fields.Range)
		if err != nil {
			return models.Location{}, models.NewBadRequestError("Invalid range")
		}
		location.Range = rng
	}
	location.City = fields.City
	location.State = fields.State
	location.Country = fields.Country
	return location, nil
}

func toGallery(photos []uploads.UploadedPhoto) []models.GalleryPhoto {
	gallery := make([]models.GalleryPhoto, 0, len(photos))
	for _, p := range photos {
		gallery = append(gallery, models.GalleryPhoto{URL: p.URL, PublicID: p.PublicID})
	}
	return gallery
}
