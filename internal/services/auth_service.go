package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/worklog/backend/internal/auth"
	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// Uniqueness of username and email is enforced by the store's unique
	// indexes; a duplicate surfaces as *errs.ConflictError.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by normalized email.
	//
	// Returns errs.ErrNotFound when no such user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// Returns errs.ErrNotFound when no such user exists.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// authService implements AuthService
type authService struct {
	userRepo UserRepository
	issuer   *auth.TokenIssuer
	roles    []string
	logger   *zap.Logger
}

// NewAuthService creates a new auth service. The recognized role set is
// injected from configuration.
func NewAuthService(userRepo UserRepository, issuer *auth.TokenIssuer, roles []string, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		roles:    roles,
		logger:   logger,
	}
}

// usernameRegex validates username: 3-30 chars, letters, digits and underscore
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// password character-class checks
var (
	lowerRegex = regexp.MustCompile(`[a-z]`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

// validatePassword records every violated password constraint
func validatePassword(v *errs.ValidationError, password string) {
	if len(password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if !upperRegex.MatchString(password) {
		v.Add("password", "must contain an uppercase letter")
	}
	if !lowerRegex.MatchString(password) {
		v.Add("password", "must contain a lowercase letter")
	}
	if !digitRegex.MatchString(password) {
		v.Add("password", "must contain a digit")
	}
}

// Register creates a new user account. It does not log the user in; the
// caller authenticates with a subsequent login.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}

	validationErr := &errs.ValidationError{}
	if !usernameRegex.MatchString(username) {
		validationErr.Add("username", "must be 3-30 characters of letters, digits or underscore")
	}
	if !emailRegex.MatchString(email) {
		validationErr.Add("email", "invalid email format")
	}
	validatePassword(validationErr, req.Password)
	if name == "" || len(name) > 100 {
		validationErr.Add("name", "must be 1-100 characters")
	}
	if !slices.Contains(s.roles, role) {
		validationErr.Add("role", fmt.Sprintf("must be one of: %s", strings.Join(s.roles, ", ")))
	}
	if validationErr.HasErrors() {
		return validationErr
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         name,
		Role:         role,
	}

	// Single constraint-backed insert; concurrent duplicates lose the race
	// inside the store and come back as a ConflictError
	return s.userRepo.Create(ctx, user)
}

// Login authenticates a user by email and password. On success it returns an
// access token, a refresh token and the sanitized user. A missing user and a
// wrong password both fail with errs.ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	validationErr := &errs.ValidationError{}
	if !emailRegex.MatchString(email) {
		validationErr.Add("email", "invalid email format")
	}
	if len(req.Password) < 8 {
		validationErr.Add("password", "must be at least 8 characters")
	}
	if validationErr.HasErrors() {
		return "", "", nil, validationErr
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", "", nil, errs.ErrInvalidCredentials
		}
		return "", "", nil, err
	}

	// bcrypt comparison is constant-time
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", nil, errs.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh verifies a refresh token and mints a new access token. The user's
// role is re-read from the store so role changes take effect on the next
// refresh, not only after the refresh token expires. The refresh token itself
// is not rotated.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	return s.issuer.IssueAccessToken(user.ID, user.Role)
}

// Me returns the fresh user row for the authenticated subject
func (s *authService) Me(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
