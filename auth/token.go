package auth

import (
	"time"

	"soapstone/errors"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "soapstone"

// GenerateToken creates a signed HS256 token whose subject is the owner id.
func GenerateToken(ownerID string, signingKey []byte, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   ownerID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken checks signature and expiration, and returns the subject claim.
func ValidateToken(tokenString string, signingKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", errors.ErrInvalidToken
	}
	return claims.Subject, nil
}
