package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"vibematch/internal/models"
	"vibematch/internal/repository"
	"vibematch/internal/service"
	"vibematch/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t)
	repo := repository.NewProfileRepository(db)
	userRepo := repository.NewUserRepository(db)
	s := &Server{
		db:             db,
		profileRepo:    repo,
		userRepo:       userRepo,
		profileService: service.NewProfileService(db, repo, userRepo, &testutil.UploaderStub{}, nil),
	}

	app := fiber.New(fiber.Config{ErrorHandler: models.ErrorHandler})
	s.SetupRoutes(app)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

type formSpec struct {
	fields map[string]string
	photos []string
}

func multipartBody(t *testing.T, form formSpec) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range form.fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, name := range form.photos {
		part, err := writer.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = part.Write([]byte{0xff, 0xd8, 0xff})
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func validForm() formSpec {
	return formSpec{
		fields: map[string]string{
			"gender":  "FEMALE",
			"dob":     "1995-07-21",
			"bio":     "Enjoys puzzles",
			"hobbies": "chess, running",
			"city":    "Cambridge",
			"range":   "15",
		},
		photos: []string{"one.jpg", "two.jpg"},
	}
}

func TestCreateProfileEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db)

	body, contentType := multipartBody(t, validForm())
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/1", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	envelope := decodeBody(t, resp)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, float64(http.StatusCreated), envelope["status"])
	assert.Equal(t, "Profile created successfully", envelope["message"])
	assert.NotEmpty(t, envelope["timestamp"])

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(user.ID), data["userId"])
	assert.Equal(t, "FEMALE", data["gender"])
	assert.ElementsMatch(t, []any{"CHESS", "RUNNING"}, data["hobbies"])

	gallery, ok := data["gallery"].([]any)
	require.True(t, ok)
	require.Len(t, gallery, 2)
	first, ok := gallery[0].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, first["url"])
	assert.NotEmpty(t, first["publicId"])

	summary, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alan", summary["firstName"])
	assert.Equal(t, "Turing", summary["lastName"])
	// the raw user record is never exposed
	assert.Nil(t, summary["email"])
	assert.Nil(t, summary["password"])
}

func TestCreateProfileMissingField(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db)

	form := validForm()
	delete(form.fields, "gender")
	body, contentType := multipartBody(t, form)

	req := httptest.NewRequest(http.MethodPost, "/api/profiles/1", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeBody(t, resp)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, float64(http.StatusBadRequest), envelope["status"])
	assert.Equal(t, "BadRequest", envelope["error"])
	assert.Equal(t, "Gender is required", envelope["message"])
	assert.Equal(t, "/api/profiles/1", envelope["path"])
	assert.NotEmpty(t, envelope["timestamp"])
}

func TestGetProfileEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db)

	body, contentType := multipartBody(t, validForm())
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/1", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/profiles/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeBody(t, resp)
	assert.Equal(t, "Profile retrieved successfully", envelope["message"])
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Enjoys puzzles", data["bio"])
}

func TestGetProfileNotFoundEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profiles/77", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	envelope := decodeBody(t, resp)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "NotFound", envelope["error"])
	assert.Equal(t, "Profile not found", envelope["message"])
	assert.Equal(t, "/api/profiles/77", envelope["path"])
}

func TestProfileInvalidUserID(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profiles/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeBody(t, resp)
	assert.Equal(t, "Invalid user ID", envelope["message"])
}

func TestUpdateProfileEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db)

	body, contentType := multipartBody(t, validForm())
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/1", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	body, contentType = multipartBody(t, formSpec{fields: map[string]string{"bio": "Updated bio"}})
	req = httptest.NewRequest(http.MethodPut, "/api/profiles/1", body)
	req.Header.Set("Content-Type", contentType)

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeBody(t, resp)
	assert.Equal(t, "Profile updated successfully", envelope["message"])
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Updated bio", data["bio"])
	assert.Equal(t, "FEMALE", data["gender"])
}

func TestUpdateProfileEmptyBody(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db)

	body, contentType := multipartBody(t, validForm())
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/1", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodPatch, "/api/profiles/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeBody(t, resp)
	assert.Equal(t, "At least one required field is missing", envelope["message"])
}

func TestProfileMethodNotAllowed(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/profiles/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	envelope := decodeBody(t, resp)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "MethodNotAllowed", envelope["error"])
}

func TestHealthEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	_ = db

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
