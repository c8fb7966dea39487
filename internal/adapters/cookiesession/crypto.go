package cookiesession

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Versioned prefix to allow future key/algorithm rotations.
const cipherPrefixV1 = "v1."

var errUnknownVersion = errors.New("unknown ciphertext version")

// sealer encrypts cookie payloads with AES-256-GCM.
// The cookie name is bound as associated data so a value cannot be replayed under another cookie.
type sealer struct {
	aead cipher.AEAD
	ad   []byte
}

// deriveKey stretches an arbitrary-length secret into a 32-byte AES-256 key.
func deriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte("portal-session:" + secret))
	return sum[:]
}

func newSealer(key []byte, associated string) (*sealer, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("aes-gcm key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &sealer{aead: gcm, ad: []byte(associated)}, nil
}

// seal returns "v1." + base64url(nonce||ciphertext).
func (s *sealer) seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	buf := s.aead.Seal(nonce, nonce, plaintext, s.ad)
	return cipherPrefixV1 + base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *sealer) open(value string) ([]byte, error) {
	b64, ok := strings.CutPrefix(value, cipherPrefixV1)
	if !ok {
		return nil, errUnknownVersion
	}
	data, err := base64.RawURLEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}
	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	return s.aead.Open(nil, data[:nonceSize], data[nonceSize:], s.ad)
}
