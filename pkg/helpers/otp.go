package helpers

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	// VerificationCodeMin and VerificationCodeMax bound the 4-digit code, both inclusive.
	VerificationCodeMin = 1000
	VerificationCodeMax = 9999
)

var codeSpan = big.NewInt(VerificationCodeMax - VerificationCodeMin + 1)

// GenVerificationCode draws a code uniformly from [1000, 9999].
func GenVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+VerificationCodeMin, 10), nil
}
