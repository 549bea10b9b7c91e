package services

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims identifies a calling service account. The gateway process
// and admin tooling each hold their own token.
type ServiceClaims struct {
	Service string `json:"service"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret string
}

func NewAuthentication(secret string) (*Authentication, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authentication{secret}, nil
}

func (authentication *Authentication) CreateToken(claims *ServiceClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(token string) (*ServiceClaims, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(authentication.secret), nil
	}

	jwtToken, err := jwt.ParseWithClaims(token, &ServiceClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*ServiceClaims)
	if !ok || !jwtToken.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
