package auth

import (
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/errors"
)

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return DefaultBcryptCost
	}
	return cost
}

// HashPassword returns a salted bcrypt hash of plain. Passwords longer
// than MaxPasswordBytes fail with ErrPasswordTooLong.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", errors.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), normalizeCost(cost))
	if err != nil {
		if stderrors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errors.ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash with a plain password. An empty
// password never matches.
func CheckPassword(hash, plain string) bool {
	if plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// DummyHash returns a hash at the given cost for BurnPasswordCheck, so a
// failed username lookup costs as much as a wrong password.
func DummyHash(cost int) (string, error) {
	return HashPassword("blogapi-timing-equalizer", cost)
}

// BurnPasswordCheck compares plain against hash and discards the result.
func BurnPasswordCheck(hash, plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
