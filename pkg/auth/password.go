package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword generates a bcrypt digest for the given password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// CheckPassword reports whether password matches the stored digest.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is compared against when the login email is unknown, so both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = HashPassword("4bfed4b7-2a39-4a10-b29b-9b6dc588b3a0")
