// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"vibematch/internal/models"
	"vibematch/internal/repository"
	"vibematch/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

var hobbyPool = []string{
	"hiking", "cooking", "photography", "gaming", "climbing", "yoga",
	"painting", "cycling", "surfing", "reading", "travel", "music",
	"dancing", "running", "chess", "gardening", "skiing", "baking",
}

// Seeder populates the database with fake users and profiles.
type Seeder struct {
	db       *gorm.DB
	users    repository.UserRepository
	profiles repository.ProfileRepository
	rng      *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:       db,
		users:    repository.NewUserRepository(db),
		profiles: repository.NewProfileRepository(db),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Child tables go first so foreign keys
// hold on databases that enforce them.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.GalleryPhoto{},
		&models.Location{},
		&models.Profile{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates numUsers users, each with a complete profile.
func (s *Seeder) SeedUsers(numUsers int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := models.User{
			FirstName:  gofakeit.FirstName(),
			LastName:   gofakeit.LastName(),
			Phone:      gofakeit.Phone(),
			Password:   string(hash),
			IsVerified: s.rng.Intn(4) > 0, // most seeded users are verified
		}
		user.Email = fmt.Sprintf("%s.%s%d@example.com",
			strings.ToLower(user.FirstName), strings.ToLower(user.LastName), i)

		if err := s.users.Create(context.Background(), &user); err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}

		if err := s.seedProfile(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("Seeded %d users with profiles", len(users))
	return users, nil
}

func (s *Seeder) seedProfile(user *models.User) error {
	gender := models.GenderMale
	if s.rng.Intn(2) == 0 {
		gender = models.GenderFemale
	}
	if s.rng.Intn(20) == 0 {
		gender = models.GenderOther
	}

	profile := models.Profile{
		UserID:      user.ID,
		Gender:      gender,
		DateOfBirth: gofakeit.DateRange(time.Now().AddDate(-45, 0, 0), time.Now().AddDate(-18, 0, 0)),
		Bio:         gofakeit.Sentence(12),
		Hobbies:     service.NormalizeHobbies(s.randomHobbies()),
		Location: &models.Location{
			Longitude: gofakeit.Longitude(),
			Latitude:  gofakeit.Latitude(),
			City:      gofakeit.City(),
			State:     gofakeit.State(),
			Country:   "US",
			Range:     10 + s.rng.Intn(90),
		},
		Gallery: s.randomGallery(),
	}

	if err := s.profiles.Create(context.Background(), &profile); err != nil {
		return fmt.Errorf("create profile for user %d: %w", user.ID, err)
	}
	return nil
}

func (s *Seeder) randomHobbies() string {
	count := 1 + s.rng.Intn(4)
	picked := make([]string, 0, count)
	for _, idx := range s.rng.Perm(len(hobbyPool))[:count] {
		picked = append(picked, hobbyPool[idx])
	}
	return strings.Join(picked, ", ")
}

func (s *Seeder) randomGallery() []models.GalleryPhoto {
	count := s.rng.Intn(4) // 0 to 3 photos
	photos := make([]models.GalleryPhoto, 0, count)
	for i := 0; i < count; i++ {
		id := gofakeit.UUID()
		photos = append(photos, models.GalleryPhoto{
			URL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", id),
			PublicID: id,
		})
	}
	return photos
}
