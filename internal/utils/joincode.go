package utils

import (
	"crypto/rand"
	"math/big"
)

// JoinCodeLength is the number of digits in a gang's public join code.
const JoinCodeLength = 5

// GenerateJoinCode returns a random numeric join code. Uniqueness is the
// caller's responsibility (retry on collision against the gangs table).
func GenerateJoinCode() (string, error) {
	digits := make([]byte, JoinCodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
