package utils

import (
	"crypto/rand"
	"math/big"
)

const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTemporaryPassword returns a random password for newly created
// accounts. The alphabet skips look-alike characters (0/O, 1/l/I).
func GenerateTemporaryPassword(length int) string {
	if length <= 0 {
		length = 12
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure is not recoverable
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out)
}
