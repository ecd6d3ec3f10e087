package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignAndVerify(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	token, err := s.Sign(Identity{UserID: "u1", Email: "a@example.com", Name: "Ann"})
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestVerifyRejectsWrongSecretAndExpired(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	token, err := s.Sign(Identity{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewSigner("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := NewSigner("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignRequiresUserID(t *testing.T) {
	_, err := NewSigner("secret", 0).Sign(Identity{})
	assert.Error(t, err)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, "pepper")
	hash, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, h.Verify(hash, "hunter22"))
	assert.ErrorIs(t, h.Verify(hash, "wrong"), ErrPasswordMismatch)
	assert.ErrorIs(t, NewPasswordHasher(bcrypt.MinCost, "").Verify(hash, "hunter22"), ErrPasswordMismatch)
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0, "").Cost)
	assert.Equal(t, 12, NewPasswordHasher(12, "").Cost)
}
