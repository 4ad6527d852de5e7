package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/phasecast/internal/db"
	"github.com/terraincognita07/phasecast/internal/models"
	"github.com/terraincognita07/phasecast/internal/services"
	"golang.org/x/crypto/bcrypt"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2024, time.January, 13, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	app     *fiber.App
	handler *Handler
	repos   *db.Repositories
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "phasecast-test.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	repos := db.NewRepositories(database)
	handler, err := NewHandler(HandlerOptions{
		Auth:        services.NewAuthService(repos.Users),
		Predictions: services.NewPredictionService(repos.Users, time.UTC),
		Reference:   services.NewReferenceService(),
		SecretKey:   testSecretKey,
		Location:    time.UTC,
		Logger:      log,
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &testEnv{app: app, handler: handler, repos: repos}
}

func (env *testEnv) createUser(t *testing.T, email string, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		CycleLength:  models.DefaultCycleLength,
		PeriodLength: models.DefaultPeriodLength,
		CreatedAt:    testNow,
	}
	if err := env.repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (env *testEnv) tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := env.handler.buildToken(&user, testNow, time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return token
}

func (env *testEnv) do(t *testing.T, method string, path string, payload any, token string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(raw))
	}
}

func decodeJSON(t *testing.T, body io.Reader, target any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, body, &payload)
	return payload["error"]
}

func newCookieRequest(method string, path string, token string) *http.Request {
	request := httptest.NewRequest(method, path, nil)
	request.AddCookie(&http.Cookie{Name: authCookieName, Value: token})
	return request
}
