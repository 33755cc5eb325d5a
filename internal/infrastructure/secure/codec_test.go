package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signpubliq/internal/config"
)

func newTestCodec(t *testing.T, secret string) *Codec {
	t.Helper()
	cfg := &config.Config{}
	cfg.Backend.Secret = secret
	c, err := NewCodec(cfg)
	require.NoError(t, err)
	return c
}

func TestCodecRoundTrip(t *testing.T) {
	c := newTestCodec(t, "shared-secret")

	type payload struct {
		Email string `json:"email"`
		Count int    `json:"count"`
	}

	sealed, err := c.Encrypt(payload{Email: "ada@example.com", Count: 3})
	require.NoError(t, err)
	assert.NotContains(t, sealed, "ada@example.com")

	var out payload
	require.NoError(t, c.Decrypt(sealed, &out))
	assert.Equal(t, "ada@example.com", out.Email)
	assert.Equal(t, 3, out.Count)
}

func TestCodecRejectsWrongKey(t *testing.T) {
	a := newTestCodec(t, "secret-a")
	b := newTestCodec(t, "secret-b")

	sealed, err := a.Encrypt("hello")
	require.NoError(t, err)

	var out string
	assert.Error(t, b.Decrypt(sealed, &out))
}

func TestCodecRejectsGarbage(t *testing.T) {
	c := newTestCodec(t, "shared-secret")

	var out string
	assert.Error(t, c.Decrypt("not base64!!", &out))
	assert.Error(t, c.Decrypt("QUJD", &out))
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec(&config.Config{})
	assert.Error(t, err)
}
