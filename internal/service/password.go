package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, digest string) (bool, error)
}

type bcryptHasher struct {
	cost int
}

func NewPasswordHasher(cost int) PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(digest), nil
}

func (h *bcryptHasher) Compare(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return false, nil
	}
	return false, fmt.Errorf("ошибка проверки пароля: %w", err)
}

func checkPassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalidInput("Password must be at least 6 characters long")
	}
	if len(password) > maxPasswordBytes {
		return invalidInput("Password must be at most 72 bytes long")
	}
	return nil
}
