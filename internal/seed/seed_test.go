package seed

import (
	"strings"
	"testing"

	"vibematch/internal/models"
	"vibematch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedUsers(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(10)
	require.NoError(t, err)
	assert.Len(t, users, 10)

	var profiles []models.Profile
	require.NoError(t, db.Preload("Location").Preload("Gallery").Find(&profiles).Error)
	require.Len(t, profiles, 10)

	for _, p := range profiles {
		assert.NotZero(t, p.UserID)
		assert.NotEmpty(t, p.Bio)
		assert.NotEmpty(t, p.Hobbies)
		for _, hobby := range p.Hobbies {
			assert.Equal(t, strings.ToUpper(hobby), hobby, "hobbies are stored uppercase")
		}
		require.NotNil(t, p.Location)
		assert.NotEmpty(t, p.Location.City)
		assert.LessOrEqual(t, len(p.Gallery), 3)
	}
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	s := NewSeeder(db)

	_, err := s.SeedUsers(5)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	var users, profiles, locations, photos int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Profile{}).Count(&profiles)
	db.Model(&models.Location{}).Count(&locations)
	db.Model(&models.GalleryPhoto{}).Count(&photos)

	assert.Zero(t, users)
	assert.Zero(t, profiles)
	assert.Zero(t, locations)
	assert.Zero(t, photos)
}

func TestSeededEmailsAreUnique(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(20)
	require.NoError(t, err)

	seen := make(map[string]bool, len(users))
	for _, u := range users {
		assert.False(t, seen[u.Email], "duplicate email %s", u.Email)
		seen[u.Email] = true
	}
}
