package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/SirPenguin555/Whats-That-Color/internal/config"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService issues and validates anonymous player tokens
type AuthService struct {
	jwtSecret  []byte
	adminToken []byte
	playerTTL  time.Duration
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		jwtSecret:  []byte(cfg.JWTSecret),
		adminToken: []byte(cfg.AdminToken),
		playerTTL:  cfg.PlayerTokenTTL,
		now:        time.Now,
	}
}

// IssueAnonymousPlayer creates a new player identity and its token
func (s *AuthService) IssueAnonymousPlayer() (*model.AnonymousPlayerResponse, error) {
	playerID := "anon_" + uuid.NewString()

	token, err := s.GeneratePlayerToken(playerID)
	if err != nil {
		return nil, err
	}
	return &model.AnonymousPlayerResponse{
		Token:    token,
		PlayerID: playerID,
	}, nil
}

// GeneratePlayerToken signs a token for playerID
func (s *AuthService) GeneratePlayerToken(playerID string) (string, error) {
	now := s.now()
	claims := &model.PlayerClaims{
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  playerID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.playerTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.playerTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidatePlayerToken validates a player JWT and returns claims
func (s *AuthService) ValidatePlayerToken(tokenString string) (*model.PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.PlayerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.PlayerClaims)
	if !ok || !token.Valid || claims.PlayerID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateAdminToken reports whether token is the configured admin token.
// With no admin token configured nothing validates.
func (s *AuthService) ValidateAdminToken(token string) bool {
	if len(s.adminToken) == 0 || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), s.adminToken) == 1
}
