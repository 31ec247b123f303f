// Package encoding provides a compact, tamper-proof codec for round-tripping
// form state through untrusted clients: msgpack serialisation, base64
// transport encoding, and an HMAC signature over the payload.
package encoding

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrInvalidFormat signals a token that is not payload.signature shaped.
	ErrInvalidFormat = errors.New("encoding: invalid token format")
	// ErrSignatureInvalid signals a token whose signature does not verify.
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
)

// Codec signs and verifies msgpack payloads. Tokens are visible to clients
// but tamper-proof; keys shorter than 32 bytes are stretched through SHA-256.
type Codec struct {
	key []byte
}

// NewCodec constructs a codec from the supplied signing key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: signing key is required")
	}
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}
	return &Codec{key: key}, nil
}

// Encode serialises the payload and returns a signed token: base64.signature.
func (c *Codec) Encode(payload map[string]any) (string, error) {
	packed, err := msgpack.Marshal(payload)
	if err != nil {
		return "", err
	}

	b64 := base64.RawURLEncoding.EncodeToString(packed)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(packed)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
	return b64 + "." + sig, nil
}

// Decode verifies a token's signature and deserialises the payload.
func (c *Codec) Decode(token string) (map[string]any, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidFormat
	}

	packed, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, c.key)
	mac.Write(packed)
	expected := mac.Sum(nil)[:16]
	if !hmac.Equal(sig, expected) {
		return nil, ErrSignatureInvalid
	}

	var payload map[string]any
	if err := msgpack.Unmarshal(packed, &payload); err != nil {
		return nil, ErrInvalidFormat
	}
	return payload, nil
}
