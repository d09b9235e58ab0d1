package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"travelog/config"

	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidToken = errors.New("invalid token")

func signingKey() []byte {
	return []byte(config.JWT_SECRET)
}

// IssueToken returns a signed HS256 token with the user's email as subject
func IssueToken(email string) (string, error) {
	expiration := time.Duration(config.JWT_EXPIRATION_MINUTES) * time.Minute
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expiration).Unix(),
	})
	return token.SignedString(signingKey())
}

// VerifyToken validates signature and expiry and returns the subject email
func VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}
