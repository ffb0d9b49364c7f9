// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const sessionIssuer = "building-permit"

type SessionClaims struct {
	ApplicationID string `json:"application_id"`
	Platform      string `json:"platform"`
	jwt.RegisteredClaims
}

var sessionSecret = []byte("permit-session-secret-change-in-production")

func SetSessionSecret(secret string) {
	sessionSecret = []byte(secret)
}

// GenerateSessionToken issues the bearer token that owns one application.
func GenerateSessionToken(applicationID uuid.UUID, platform string, ttlHours int) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		ApplicationID: applicationID.String(),
		Platform:      platform,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   applicationID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return sessionSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		if claims.Issuer != sessionIssuer {
			return nil, errors.New("invalid token issuer")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
