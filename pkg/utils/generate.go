package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferenceLength is the size of a booking reference code.
const ReferenceLength = 8

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateReference returns a random uppercase alphanumeric booking code.
func GenerateReference() (string, error) {
	max := big.NewInt(int64(len(referenceAlphabet)))
	buf := make([]byte, ReferenceLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return string(buf), nil
}
