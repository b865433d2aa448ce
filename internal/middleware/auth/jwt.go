package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"registro-os/internal/config"
)

type Claims struct {
	UserID         int64  `json:"uid"`
	Email          string `json:"email"`
	Nome           string `json:"nome"`
	PrivilegeLevel string `json:"privilege_level"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(cfg config.Auth) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth: jwt secret is empty")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}

	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}, nil
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Generate assina um token HS256 com o nível de privilégio embutido.
func (m *TokenManager) Generate(userID int64, email, nome, privilegeLevel string) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID:         userID,
		Email:          email,
		Nome:           nome,
		PrivilegeLevel: privilegeLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}

	return signed, nil
}

func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("auth: invalid token claims")
	}

	return claims, nil
}
