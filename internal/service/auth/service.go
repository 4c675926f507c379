// Package auth issues and validates the credentials behind the admin login.
// Login failures are deliberately indistinct: a wrong password and an
// unknown account produce the same error, so the endpoint cannot be used to
// enumerate accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cristovive/gestao/internal/config"
	"github.com/cristovive/gestao/internal/domain/models"
	"github.com/cristovive/gestao/internal/repository/mongodb"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken covers malformed, expired and revoked tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Service authenticates administrators and manages their tokens.
type Service struct {
	cfg    config.AuthConfig
	users  mongodb.UserRepository
	logger *zap.Logger
}

// NewService wires an auth service instance.
func NewService(cfg config.AuthConfig, users mongodb.UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, users: users, logger: logger}
}

// Login verifies the credentials and returns the user plus an access and a
// refresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		s.logger.Warn("login attempt for unknown account")
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login attempt with wrong password", zap.String("email", email))
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, "", "", fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info("user logged in", zap.String("email", email))
	return user, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The old
// token is consumed either way.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	rt, err := s.users.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("lookup refresh token: %w", err)
	}
	if rt == nil {
		return "", "", ErrInvalidToken
	}

	if err := s.users.DeleteRefreshToken(ctx, refreshToken); err != nil {
		s.logger.Warn("failed consuming refresh token", zap.Error(err))
	}
	if time.Now().After(rt.ExpiresAt) {
		return "", "", ErrInvalidToken
	}

	access, refresh, err := s.issueFor(ctx, rt.UserID, rt.Email)
	if err != nil {
		return "", "", fmt.Errorf("generate tokens: %w", err)
	}
	return access, refresh, nil
}

// Logout revokes the refresh token. Access tokens simply expire.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.users.DeleteRefreshToken(ctx, refreshToken)
}

// ValidateToken parses and verifies an access token.
func (s *Service) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Identity extracts the user id and email claims from a validated token.
func (s *Service) Identity(token *jwt.Token) (userID, email string, err error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	userID, ok = claims["sub"].(string)
	if !ok {
		return "", "", ErrInvalidToken
	}
	email, _ = claims["email"].(string)
	return userID, email, nil
}

// Bootstrap creates the initial administrator account when the user
// collection is empty and credentials were provided via configuration.
func (s *Service) Bootstrap(ctx context.Context, admin config.AdminConfig) error {
	if admin.Email == "" {
		return nil
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := s.users.Create(ctx, models.User{Email: admin.Email, PasswordHash: string(hash)}); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	s.logger.Info("initial admin account created", zap.String("email", admin.Email))
	return nil
}

func (s *Service) generateTokens(ctx context.Context, user *models.User) (string, string, error) {
	return s.issueFor(ctx, user.ID.Hex(), user.Email)
}

func (s *Service) issueFor(ctx context.Context, userID, email string) (string, string, error) {
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(time.Hour * time.Duration(s.cfg.AccessTTLHours)).Unix(),
		"iat":   time.Now().Unix(),
	})

	accessString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshString := uuid.New().String()
	rt := models.RefreshToken{
		Token:     refreshString,
		UserID:    userID,
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour * 24 * time.Duration(s.cfg.RefreshTTLDays)),
	}
	if err := s.users.SaveRefreshToken(ctx, rt); err != nil {
		return "", "", err
	}

	return accessString, refreshString, nil
}
