package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the identity a Profile belongs to. It is created by the seeder
// (or an external identity service) and surfaced read-only alongside a
// Profile; this service never mutates users.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FirstName  string         `gorm:"not null" json:"firstName"`
	LastName   string         `gorm:"not null" json:"lastName"`
	Email      string         `gorm:"unique;not null" json:"email"`
	Phone      string         `json:"phone"`
	Password   string         `gorm:"not null" json:"-"`
	IsArchived bool           `json:"isArchived"`
	IsVerified bool           `json:"isVerified"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserSummary is the restricted projection of a User returned inside a
// profile aggregate.
type UserSummary struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	IsArchived bool   `json:"isArchived"`
	IsVerified bool   `json:"isVerified"`
}

// Summary projects the user down to the fields exposed with a profile.
func (u *User) Summary() UserSummary {
	return UserSummary{
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsArchived: u.IsArchived,
		IsVerified: u.IsVerified,
	}
}
