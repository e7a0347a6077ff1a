package services

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateOTP returns a crypto-random 6-digit code, also used for password
// reset tokens.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
