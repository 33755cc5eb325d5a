package usecase

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return token
}

func TestDecodeUser(t *testing.T) {
	u := &authUsecase{logger: zap.NewNop()}

	token := signToken(t, jwt.MapClaims{
		"user_id":      float64(42),
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"email":        "ada@example.com",
		"role_type_id": float64(1),
		"exp":          float64(1790000000),
		"iat":          float64(1780000000),
	})

	user, err := u.DecodeUser(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, 1, user.RoleTypeID)
	assert.Equal(t, int64(1790000000), user.ExpiresAt)
}

func TestDecodeUserRejectsGarbage(t *testing.T) {
	u := &authUsecase{logger: zap.NewNop()}

	_, err := u.DecodeUser("not-a-token")
	assert.Error(t, err)
}

func TestLoginValidatesInputBeforeGatewayCall(t *testing.T) {
	// A nil gateway proves validation short-circuits before any call.
	u := NewAuthUsecase(nil, nil, zap.NewNop())

	_, err := u.Login(context.Background(), "not-an-email", "secret")
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = u.Login(context.Background(), "ada@example.com", "")
	assert.ErrorIs(t, err, entity.ErrValidation)
}
