package secure

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"signpubliq/internal/config"
)

// Codec is the reversible payload encoding the backend expects: every
// request body travels under a single "data" field, and responses
// carry their payload the same way. AES-GCM over the JSON form, keyed
// from the shared backend secret.
type Codec struct {
	aead cipher.AEAD
}

func NewCodec(cfg *config.Config) (*Codec, error) {
	if cfg.Backend.Secret == "" {
		return nil, errors.New("backend secret is required")
	}

	key := sha256.Sum256([]byte(cfg.Backend.Secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to init gcm: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encrypt serializes v to JSON and seals it. The output is
// base64(nonce || ciphertext).
func (c *Codec) Encrypt(v any) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt into out.
func (c *Codec) Decrypt(encoded string, out any) error {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	if len(raw) < c.aead.NonceSize() {
		return errors.New("payload too short")
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return fmt.Errorf("failed to decrypt payload: %w", err)
	}

	return json.Unmarshal(plain, out)
}
