package utils

import (
	"crypto/rand" // Cryptographically secure randomness
	"math/big"    // Arbitrary precision integers for rand.Int
)

// Alphabet for generated temporary passwords
const tempPasswordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TempPasswordLength is the length of generated temporary passwords
const TempPasswordLength = 12

// GenerateTempPassword returns a random alphanumeric password of n characters,
// drawn from crypto/rand so it cannot be guessed from prior outputs
func GenerateTempPassword(n int) (string, error) {
	b := make([]byte, n) // Buffer for the password characters
	max := big.NewInt(int64(len(tempPasswordChars)))
	for i := range b {
		// Pick an unbiased random index into the alphabet
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err // Return error if entropy source fails
		}
		b[i] = tempPasswordChars[idx.Int64()] // Select the character
	}
	return string(b), nil // Return the generated password
}
