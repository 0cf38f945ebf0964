package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Low cost is enough for codes that expire in minutes.
const otpHashCost = 8

// GenerateOtpCode generates a 6-digit numeric code
func GenerateOtpCode() (string, error) {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += fmt.Sprintf("%d", n.Int64())
	}
	return code, nil
}

// HashOtpCode returns a salted one-way hash of a login code.
func HashOtpCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), otpHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckOtpCode reports whether code matches a stored hash.
func CheckOtpCode(hashed, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(code)) == nil
}
