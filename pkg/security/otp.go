package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP produces a numeric one-time code of the requested length,
// zero-padded so leading zeros survive.
func GenerateOTP(digits int) (string, error) {
	if digits <= 0 || digits > 10 {
		return "", fmt.Errorf("otp length %d out of range", digits)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generating otp: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
