package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// User is the identity the session provider resolves from a bearer token.
type User struct {
	ID    string
	Email string
}

type Provider struct {
	secret []byte
}

func NewProvider(secret string) *Provider {
	return &Provider{secret: []byte(secret)}
}

// ExtractBearer pulls the token out of an Authorization header.
// Expected format: "Bearer {token}".
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", domain.ErrNotAuthenticated
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", domain.ErrNotAuthenticated
	}
	return parts[1], nil
}

// UserFromToken verifies the token signature and expiry and resolves the
// current user. Any failure maps to ErrNotAuthenticated so callers treat it
// as a precondition failure, not a runtime error.
func (p *Provider) UserFromToken(tokenString string) (*User, error) {
	if tokenString == "" {
		return nil, domain.ErrNotAuthenticated
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Join(domain.ErrNotAuthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, domain.ErrNotAuthenticated
	}

	user := &User{ID: sub}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	return user, nil
}
