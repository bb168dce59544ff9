package internal

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

const tokenRawSize = 32

// TokenLength is the encoded length of every token this module issues.
const TokenLength = 43

// NewToken returns an unguessable fixed-length opaque token: a random
// UUID followed by 16 bytes of independent CSPRNG output, base64url
// encoded. Tokens carry no decodable claims, so revocation is a single
// key delete on the server side.
func NewToken() (string, error) {
	var raw [tokenRawSize]byte

	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	copy(raw[:len(id)], id[:])

	if _, err := rand.Read(raw[len(id):]); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}
