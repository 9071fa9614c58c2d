package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/verdemed/verdemed/application/port/outbound"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// JWTService mints HS256 access tokens and opaque refresh tokens for the
// identity store.
type JWTService struct {
	hmacSecret     []byte
	accessTokenTTL time.Duration
}

func NewJWTService(secret string, accessTokenTTL time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTService{
		hmacSecret:     []byte(secret),
		accessTokenTTL: accessTokenTTL,
	}, nil
}

func (s *JWTService) GenerateAccessToken(identityID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   identityID,
		"email": email,
		"type":  "access",
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken returns a cryptographically random opaque token.
func (s *JWTService) GenerateRefreshToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*outbound.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.hmacSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	identityID, ok := claims["sub"].(string)
	if !ok || identityID == "" {
		return nil, ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return &outbound.TokenClaims{
		IdentityID: identityID,
		Email:      email,
	}, nil
}
