// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/niksalehi/go-visionchat/internal/domain"
	"github.com/niksalehi/go-visionchat/internal/repository/user"
	"github.com/niksalehi/go-visionchat/internal/services"
	"github.com/niksalehi/go-visionchat/internal/services/token"
)

var (
	// ErrEmailTaken means signup was attempted with an email already present.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const passwordMinLength = 8

// AuthService handles signup, login and the credential store half of
// per-request identity resolution.
type AuthService struct {
	userRepo user.UserRepository
	tokens   *token.Service
	logger   services.Logger
}

func NewAuthService(userRepo user.UserRepository, tokens *token.Service, logger services.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Signup registers a new user with a bcrypt-hashed password.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validateSignupInput(email, password); err != nil {
		s.logger.Warn("signup validation failed",
			"email", maskEmail(email),
			"error", err.Error())
		return nil, err
	}

	s.logger.Info("signup attempt", "email", maskEmail(email))

	newUser := &domain.User{Email: email}
	if err := newUser.HashPassword(password); err != nil {
		s.logger.Error("password hashing failed", "email", maskEmail(email), "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	createdUser, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			s.logger.Warn("signup failed - email already exists", "email", maskEmail(email))
			return nil, ErrEmailTaken
		}
		s.logger.Error("user creation failed", "email", maskEmail(email), "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"email", maskEmail(email),
		"user_id", createdUser.ID)
	return createdUser, nil
}

// Login authenticates a user and returns a signed identity token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials",
			"has_email", email != "",
			"has_password", password != "")
		return nil, "", ErrInvalidCredentials
	}

	s.logger.Info("login attempt", "email", maskEmail(email))

	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed - user not found", "email", maskEmail(email))
		return nil, "", ErrInvalidCredentials
	}

	if err := account.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password",
			"email", maskEmail(email),
			"user_id", account.ID)
		return nil, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		s.logger.Error("token issuance failed", "user_id", account.ID, "error", err)
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("login successful", "email", maskEmail(email), "user_id", account.ID)
	return account, tok, nil
}

// ResolvePrincipal turns a bearer token into an authenticated principal. A
// token that outlives its account fails with user.ErrUserNotFound.
func (s *AuthService) ResolvePrincipal(ctx context.Context, bearerToken string) (*domain.Principal, error) {
	claims, err := s.tokens.Verify(bearerToken)
	if err != nil {
		return nil, err
	}

	account, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.logger.Warn("valid token for deleted account", "user_id", claims.UserID)
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}

	return &domain.Principal{UserID: account.ID, Email: account.Email}, nil
}

func (s *AuthService) validateSignupInput(email, password string) error {
	if !emailRegex.MatchString(email) {
		return errors.New("email address is invalid")
	}
	if len(password) < passwordMinLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// maskEmail hides most of the local part for log output.
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 2 {
		return "****" + email[max(at, 0):]
	}
	return email[:2] + "****" + email[at:]
}
