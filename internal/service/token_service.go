package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Sign(userID string) (string, *Claims, error)
	Verify(tokenString string) (*Claims, error)
}

type tokenService struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, duration time.Duration) TokenService {
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
		now:      time.Now,
	}
}

func (s *tokenService) Sign(userID string) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, claims, nil
}

func (s *tokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("недействительный токен")
	}

	return claims, nil
}
