// Package crypto provides password hashing for accounts that carry a credential column
// even when they never log in with it.
package crypto

import (
	"github.com/futurecast/futurecast/util/random"

	"golang.org/x/crypto/bcrypt"
)

const placeholderLength = 24

// HashPasswordAsBcrypt generates a bcrypt hash of the given password.
func HashPasswordAsBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash verifies if the given password matches the bcrypt hash.
func CheckPasswordHash(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PlaceholderPasswordHash hashes a random secret nobody knows. Wallet accounts store it so
// the password column is never empty.
func PlaceholderPasswordHash() (string, error) {
	return HashPasswordAsBcrypt(random.Seq(placeholderLength))
}
