package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/voltfleet/voltfleet-backend/internal/config"
	"github.com/voltfleet/voltfleet-backend/internal/dto"
	"github.com/voltfleet/voltfleet-backend/internal/models"
	"github.com/voltfleet/voltfleet-backend/internal/storage"
	"github.com/voltfleet/voltfleet-backend/internal/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidInput       = errors.New("username, email and a password of at least 6 characters are required")
)

type AuthService struct {
	store storage.Storage
	cfg   *config.Config
}

func NewAuthService(store storage.Storage, cfg *config.Config) *AuthService {
	return &AuthService{store: store, cfg: cfg}
}

// Register creates a user with a bcrypt-hashed password and returns the
// profile plus a freshly issued bearer token.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" || !strings.Contains(email, "@") || len(req.Password) < 6 {
		return nil, ErrInvalidInput
	}

	if _, err := s.store.UserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.store.UserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		// A concurrent registration can slip past the lookups above and
		// trip the unique index instead.
		if errors.Is(err, storage.ErrDuplicateUser) {
			if _, lookupErr := s.store.UserByUsername(ctx, username); lookupErr == nil {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(&user)
}

// Login verifies the credentials and returns the profile plus a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.store.UserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// CurrentUser resolves the authenticated user's profile.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	signed, err := token.Issue(user.ID, []byte(s.cfg.JWTSecret), s.cfg.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.AuthResponse{
		User:  userResponse(user),
		Token: signed,
	}, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
