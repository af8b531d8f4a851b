package utils

import (
	"math/rand"
)

const cidAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewCid returns an 8-char identifier for embedded comments and replies.
func NewCid() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = cidAlphabet[rand.Intn(len(cidAlphabet))]
	}
	return string(b)
}
