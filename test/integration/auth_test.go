package integration

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklog/backend/internal/auth"
	"github.com/worklog/backend/internal/config"
	"github.com/worklog/backend/internal/handlers"
	"github.com/worklog/backend/internal/middlewares"
	"github.com/worklog/backend/internal/repositories"
	"github.com/worklog/backend/internal/services"
	"go.uber.org/zap"
)

var (
	testDB     *sql.DB
	testRouter chi.Router
	testLogger *zap.Logger
)

// setupTestSchema creates the tables the auth flow needs
func setupTestSchema(db *sql.DB) {
	usersTable := `
		CREATE TABLE IF NOT EXISTS users (
			id INT PRIMARY KEY AUTO_INCREMENT,
			username VARCHAR(30) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(100) NOT NULL,
			role VARCHAR(30) NOT NULL DEFAULT 'employee',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`

	db.Exec(usersTable)
}

// cleanupUsers removes all user rows between tests
func cleanupUsers(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM users")
	require.NoError(t, err, "Failed to cleanup users")
	_, err = db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
	require.NoError(t, err, "Failed to reset users AUTO_INCREMENT")
}

// getCookie extracts a cookie from the response
func getCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// setupTestRouter wires the real auth stack against the test database
func setupTestRouter(db *sql.DB, cfg *config.Config, logger *zap.Logger) chi.Router {
	issuer := auth.NewTokenIssuer(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	userRepo := repositories.NewUserRepository(db)
	authSvc := services.NewAuthService(userRepo, issuer, cfg.Roles, logger)
	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.JWT.RefreshTokenExpiry, false)
	authMiddleware := middlewares.AuthMiddleware(issuer)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authMiddleware)
	})

	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}

	// No test database configured; every test skips
	if cfg.Database.Host != "" {
		testDB, err = sql.Open("mysql", cfg.DSN())
		if err != nil {
			panic(fmt.Sprintf("Failed to connect to test database: %v", err))
		}
		if err = testDB.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to ping test database: %v", err))
		}

		setupTestSchema(testDB)
		testRouter = setupTestRouter(testDB, cfg, testLogger)
	}

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

// requireTestDB skips the test when no test database is configured
func requireTestDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	if testDB == nil {
		t.Skip("TEST_DB_HOST not set; skipping integration tests")
	}
}

func doJSON(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}

func TestIntegration_RegisterLoginFlow(t *testing.T) {
	requireTestDB(t)
	cleanupUsers(t, testDB)

	// Register
	rec := doJSON(http.MethodPost, "/api/auth/register",
		`{"username":"alice01","email":"alice@example.com","password":"Password123","name":"Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User created")

	// Registration does not log in; no cookie is set
	assert.Nil(t, getCookie(rec, "refresh_token"))

	// Login
	rec = doJSON(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"Password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var loginBody struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginBody))
	assert.NotEmpty(t, loginBody.AccessToken)
	assert.Equal(t, "alice01", loginBody.User.Username)
	assert.Equal(t, "employee", loginBody.User.Role)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	refreshCookie := getCookie(rec, "refresh_token")
	require.NotNil(t, refreshCookie)
	assert.Equal(t, "/api/auth/refresh", refreshCookie.Path)
	assert.True(t, refreshCookie.HttpOnly)

	// Me with the access token
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody.AccessToken)
	meRec := httptest.NewRecorder()
	testRouter.ServeHTTP(meRec, req)
	require.Equal(t, http.StatusOK, meRec.Code)
	assert.Contains(t, meRec.Body.String(), "alice@example.com")

	// Refresh with the cookie
	rec = doJSON(http.MethodPost, "/api/auth/refresh", "", refreshCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var refreshBody struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshBody))
	assert.NotEmpty(t, refreshBody.AccessToken)

	// Logout clears the cookie
	rec = doJSON(http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := getCookie(rec, "refresh_token")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	// A request with no cookie fails
	rec = doJSON(http.MethodPost, "/api/auth/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIntegration_DuplicateRegistration(t *testing.T) {
	requireTestDB(t)
	cleanupUsers(t, testDB)

	body := `{"username":"alice01","email":"alice@example.com","password":"Password123","name":"Alice"}`

	rec := doJSON(http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Exactly one row survives
	var count int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestIntegration_LoginFailuresAreUniform(t *testing.T) {
	requireTestDB(t)
	cleanupUsers(t, testDB)

	rec := doJSON(http.MethodPost, "/api/auth/register",
		`{"username":"alice01","email":"alice@example.com","password":"Password123","name":"Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	unknownEmail := doJSON(http.MethodPost, "/api/auth/login",
		`{"email":"nosuch@example.com","password":"Password123"}`)
	wrongPassword := doJSON(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"WrongPass123"}`)

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestIntegration_ValidationReportsAllFields(t *testing.T) {
	requireTestDB(t)
	cleanupUsers(t, testDB)

	rec := doJSON(http.MethodPost, "/api/auth/register",
		`{"username":"a","email":"bad","password":"short1","name":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	fields := map[string]bool{}
	for _, fieldErr := range body.Errors {
		fields[fieldErr.Field] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
	assert.True(t, fields["name"])
}
