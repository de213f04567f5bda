package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"paylater/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "paylater-api"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var errNoSecret = errors.New("JWT_SECRET not configured")

// GenerateTokens signs an access/refresh token pair carrying the given
// identity. Both embed the TokenVersion so refresh can be revoked by
// bumping the version on the user record.
func GenerateTokens(claims *models.UserClaims) (string, string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", "", errNoSecret
	}

	access, err := signToken(claims, accessTokenTTL, secret)
	if err != nil {
		return "", "", err
	}
	refresh, err := signToken(claims, refreshTokenTTL, secret)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func signToken(identity *models.UserClaims, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(identity.UserID), 10),
		},
		UserID:       identity.UserID,
		Email:        identity.Email,
		Role:         identity.Role,
		TokenVersion: identity.TokenVersion,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates a token string and returns its claims. Only
// HMAC-signed tokens are accepted.
func ParseToken(tokenStr string) (*jwt.Token, *models.UserClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, nil, errNoSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}
	return token, claims, nil
}
