package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	resetCodeLength = 6
	letterBytes     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	nameBytes       = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateResetCode returns a short single-use code for password resets.
func GenerateResetCode() (string, error) {
	return randomString(resetCodeLength, letterBytes)
}

// RandomName is used to name uploads that carry no filename of their own.
func RandomName(n int) (string, error) {
	return randomString(n, nameBytes)
}

func randomString(n int, alphabet string) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}
	return sb.String(), nil
}
