package utility

import (
	"errors"

	"github.com/Aniket1026/yoto/internal/common"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes plain with bcrypt at the default cost.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", common.ErrRequiredField.WithMessage("Password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.ErrInvalidInput.WithMessage("Password must be at most 72 bytes")
		}
		return "", common.ErrInternal.WithDetails(err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the bcrypt hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
