package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"car-inventory-backend/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(password string) (string, error)
}

type authService struct {
	passwordHash []byte
	jwtManager   *jwt.Manager
}

// NewAuthService hashes the configured admin password once at startup
// so the plaintext never sits in memory beyond construction.
func NewAuthService(adminPassword string, jwtManager *jwt.Manager) (Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &authService{passwordHash: hash, jwtManager: jwtManager}, nil
}

func (s *authService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken("admin", "admin")
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
