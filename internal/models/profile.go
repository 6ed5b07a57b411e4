package models

import (
	"time"

	"gorm.io/gorm"
)

// Gender is the profile gender tag.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Profile holds a user's demographic data together with its owned Location
// and Gallery. Exactly one Profile exists per user; UserID is immutable once
// set.
type Profile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"userId"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
	Gender      Gender         `gorm:"type:varchar(16);not null" json:"gender"`
	DateOfBirth time.Time      `gorm:"not null" json:"dateOfBirth"`
	Bio         string         `gorm:"type:text" json:"bio"`
	Hobbies     []string       `gorm:"serializer:json" json:"hobbies"`
	Location    *Location      `gorm:"foreignKey:ProfileID" json:"location,omitempty"`
	Gallery     []GalleryPhoto `gorm:"foreignKey:ProfileID" json:"gallery"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Location is a profile's geo-tagged position and search radius. Writes
// always replace every field; there is no partial Location update.
type Location struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProfileID uint    `gorm:"uniqueIndex;not null" json:"-"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Range     int     `json:"range"`
}

// GalleryPhoto is one uploaded photo reference. Rows are immutable once
// persisted; the gallery only grows.
type GalleryPhoto struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"index;not null" json:"-"`
	URL       string    `gorm:"not null" json:"url"`
	PublicID  string    `gorm:"not null" json:"publicId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileAggregate is the combined Profile + Location + Gallery view with the
// owning user's restricted projection flattened to the top level.
type ProfileAggregate struct {
	Profile
	User UserSummary `json:"user"`
}

// Aggregate builds the response shape for a profile whose User association
// has been loaded.
func (p *Profile) Aggregate() *ProfileAggregate {
	return &ProfileAggregate{
		Profile: *p,
		User:    p.User.Summary(),
	}
}
