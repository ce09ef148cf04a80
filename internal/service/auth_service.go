package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/config"
)

// AuthService issues and validates the bearer tokens that identify callers.
// Account management lives in the platform's user system; this service only
// needs a verifiable user id on every request.
type AuthService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		cfg:    cfg,
		logger: logger,
	}
}

// GenerateToken issues a signed access token for a user id.
func (s *AuthService) GenerateToken(userID int64) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.Auth.AccessTokenDuration)

	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken verifies a token and returns the user id it carries.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims: %w", apperr.ErrUnauthorized)
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("missing subject claim: %w", apperr.ErrUnauthorized)
	}

	var userID int64
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID <= 0 {
		return 0, fmt.Errorf("malformed subject claim: %w", apperr.ErrUnauthorized)
	}

	return userID, nil
}
