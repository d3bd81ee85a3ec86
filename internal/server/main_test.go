package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"snapfeed/internal/config"
	"snapfeed/internal/mediastore"
	"snapfeed/internal/models"
	"snapfeed/internal/repository"
	"snapfeed/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer wires a Server over an in-memory SQLite database and the
// given media store, with the full route table mounted.
func setupTestServer(t *testing.T, media mediastore.Uploader) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	postRepo := repository.NewPostRepository(db)
	srv := &Server{
		config:   &config.Config{JWTSecret: "test-secret-key"},
		db:       db,
		userRepo: repository.NewUserRepository(db),
		postRepo: postRepo,
		feed:     service.NewFeedService(postRepo, media, 25),
	}

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, db
}

// mediaStub is an Uploader that always succeeds.
type mediaStub struct {
	calls int
}

func (m *mediaStub) Upload(_ context.Context, fileName string, _ []byte) (*mediastore.UploadResult, error) {
	m.calls++
	return &mediastore.UploadResult{
		URL:  "https://cdn.example.com/" + fileName,
		Name: "stored_" + fileName,
	}, nil
}

// signTokenWithIssuer mints an HS256 token for user 1 with arbitrary
// issuer/audience, for negative-path middleware tests.
func signTokenWithIssuer(t *testing.T, secret, issuer, audience string) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// signupUser registers a user through the API and returns the session token.
func signupUser(t *testing.T, app *fiber.App, username, email string) authResponse {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var parsed authResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotEmpty(t, parsed.Token)
	return parsed
}

// multipartUpload builds a multipart body with a file part and a caption.
func multipartUpload(t *testing.T, filename, contentType, caption string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	if caption != "" {
		require.NoError(t, writer.WriteField("caption", caption))
	}
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}
