package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
	"github.com/gyansetu/gyansetu-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse login response
type LoginResponse struct {
	User         *domain.Profile `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

// TokenPair token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CurrentUser is the identity of the session
type CurrentUser struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// AuthService authentication business logic
type AuthService interface {
	Register(req *RegisterRequest) (*LoginResponse, error)
	Login(req *LoginRequest) (*LoginResponse, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	GetCurrentUser(userID uint64) (*CurrentUser, error)
}

type authService struct {
	profiles   repository.ProfileRepository
	jwtManager *jwt.Manager
	notifier   NotificationService
}

// NewAuthService creates a new AuthService
func NewAuthService(profiles repository.ProfileRepository, jwtManager *jwt.Manager, notifier NotificationService) AuthService {
	return &authService{
		profiles:   profiles,
		jwtManager: jwtManager,
		notifier:   notifier,
	}
}

// Register creates a student profile and signs the user in
func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, common.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := &domain.Profile{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         domain.RoleStudent,
	}
	if err := s.profiles.Create(profile); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(domain.NotificationEvent{
			Type:        domain.NotificationWelcome,
			RecipientID: profile.ID,
			Message:     fmt.Sprintf("Welcome to GyanSetu, %s!", profile.DisplayName),
		})
	}

	return s.issue(profile)
}

// Login authenticates user and returns tokens
func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	profile, err := s.profiles.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if profile.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	return s.issue(profile)
}

func (s *authService) issue(profile *domain.Profile) (*LoginResponse, error) {
	access, err := s.jwtManager.GenerateAccessToken(profile.ID, profile.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(profile.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{User: profile, AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshToken exchanges a refresh token for a new pair
func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	profile, err := s.profiles.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	res, err := s.issue(profile)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: res.AccessToken, RefreshToken: res.RefreshToken}, nil
}

func (s *authService) GetCurrentUser(userID uint64) (*CurrentUser, error) {
	profile, err := s.profiles.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &CurrentUser{ID: profile.ID, Email: profile.Email}, nil
}
