package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator mints session ids.
type Generator interface {
	New() string
}

// RandomHex returns 16 hex characters. Ids only need to be unique within
// one user's session history.
type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
