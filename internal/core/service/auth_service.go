package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

// Authenticator verifies credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
}

// AuthService implements login on top of the Directory and issues session tokens.
type AuthService struct {
	accounts  Authenticator
	jwtSecret string
	tokenTTL  time.Duration
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(accounts Authenticator, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{accounts: accounts, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	acc, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(acc)
	if err != nil {
		return "", nil, err
	}
	return token, acc, nil
}

// The role claim is informational; handlers re-resolve the account on every
// request so role changes and deletions take effect immediately.
func (s *AuthService) generateToken(acc *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"username": acc.Username,
		"role":     string(acc.Role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
