package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// HashPassword returns a salted bcrypt hash of the plaintext password.
// Hashing the same plaintext twice yields different hashes.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored hash
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
