package server

import (
	"io"
	"mime/multipart"
	"strings"

	"vibematch/internal/models"
	"vibematch/internal/service"
	"vibematch/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

// parseUserID extracts the userId route parameter as a positive uint.
func parseUserID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("userId")
	if err != nil || id <= 0 {
		return 0, models.NewBadRequestError("Invalid user ID")
	}
	return uint(id), nil
}

// profileFields collects the profile form values from a multipart request.
// Absent fields come back as empty strings.
func profileFields(c *fiber.Ctx) service.ProfileFields {
	return service.ProfileFields{
		Gender:    strings.TrimSpace(c.FormValue("gender")),
		DOB:       strings.TrimSpace(c.FormValue("dob")),
		Hobbies:   c.FormValue("hobbies"),
		Bio:       c.FormValue("bio"),
		Longitude: strings.TrimSpace(c.FormValue("longitude")),
		Latitude:  strings.TrimSpace(c.FormValue("latitude")),
		City:      strings.TrimSpace(c.FormValue("city")),
		State:     strings.TrimSpace(c.FormValue("state")),
		Country:   strings.TrimSpace(c.FormValue("country")),
		Range:     strings.TrimSpace(c.FormValue("range")),
	}
}

// photoFiles reads the "photos" multipart file parts into memory, preserving
// the order they were sent in. A request without a multipart body yields an
// empty slice.
func photoFiles(c *fiber.Ctx) ([]uploads.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	headers := form.File["photos"]
	files := make([]uploads.File, 0, len(headers))
	for _, header := range headers {
		file, err := readFilePart(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readFilePart(header *multipart.FileHeader) (uploads.File, error) {
	src, err := header.Open()
	if err != nil {
		return uploads.File{}, models.NewBadRequestError("Could not read uploaded file")
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return uploads.File{}, models.NewBadRequestError("Could not read uploaded file")
	}

	return uploads.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
