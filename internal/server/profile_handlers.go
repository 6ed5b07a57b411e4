package server

import (
	"github.com/gofiber/fiber/v2"

	"vibematch/internal/models"
)

// CreateProfile handles POST /api/profiles/:userId.
// Expects a multipart form with gender, dob, bio, optional hobbies and
// location fields, and one or more "photos" file parts.
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	files, err := photoFiles(c)
	if err != nil {
		return err
	}

	aggregate, err := s.profileService.Create(c.Context(), userID, profileFields(c), files)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusCreated, aggregate, "Profile created successfully")
}

// GetProfile handles GET /api/profiles/:userId.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	aggregate, err := s.profileService.Get(c.Context(), userID)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, aggregate, "Profile retrieved successfully")
}

// UpdateProfile handles PUT and PATCH /api/profiles/:userId.
// All form fields are optional but at least one field or photo must be sent.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	files, err := photoFiles(c)
	if err != nil {
		return err
	}

	aggregate, err := s.profileService.Update(c.Context(), userID, profileFields(c), files)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, aggregate, "Profile updated successfully")
}
