package security

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// MinSecretLength is the shortest SECRET_KEY the server accepts.
const MinSecretLength = 32

// SecretAlphabet avoids characters that are easy to misread when a value is
// copied out of a terminal.
const SecretAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errLargeAlphabet  = errors.New("alphabet must have at most 256 characters")
)

// RandomString draws length characters from alphabet using crypto/rand.
// Bytes past the largest multiple of len(alphabet) are rejected so every
// character is equally likely.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case len(alphabet) == 0:
		return "", errEmptyAlphabet
	case len(alphabet) > 256:
		return "", errLargeAlphabet
	}

	size := len(alphabet)
	cutoff := 256 - 256%size
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= cutoff {
				continue
			}
			out = append(out, alphabet[int(b)%size])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// NewSecret returns a SECRET_KEY candidate of at least MinSecretLength
// characters.
func NewSecret(length int) (string, error) {
	return RandomString(max(length, MinSecretLength), SecretAlphabet)
}
