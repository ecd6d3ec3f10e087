package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"resume-builder/internal/shared/auth"
)

func newTestService() (*Service, *auth.Signer) {
	signer := auth.NewSigner("test-secret", time.Hour)
	return NewService(NewMemoryRepo(), auth.NewPasswordHasher(bcrypt.MinCost, "pepper"), signer), signer
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, signer := newTestService()

	session, err := svc.Register(context.Background(), RegisterRequest{
		Name:     " Ann ",
		Email:    "Ann@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", session.User.Name)
	assert.Equal(t, "ann@example.com", session.User.Email)
	assert.NotEqual(t, "correct-horse", session.User.PasswordHash)

	claims, err := signer.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
}

func TestRegisterRejectsDuplicateEmailIgnoringCase(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Other", Email: "ANN@example.com", Password: "password2"})
	assert.True(t, errors.Is(err, ErrEmailTaken))
}

func TestLoginChecksPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)

	session, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
	assert.NotEmpty(t, session.Token)

	_, err = svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithGoogleCreatesThenReuses(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	profile := GoogleProfile{Sub: "g-123", Email: "Ann@Example.com", Name: "Ann", Picture: "https://img.example/a.png"}

	first, err := svc.LoginWithGoogle(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "google:g-123", first.User.ID)
	assert.Equal(t, "https://img.example/a.png", first.User.PictureURL)

	second, err := svc.LoginWithGoogle(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	// Google-only accounts have no password.
	_, err = svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithGoogleRequiresEmail(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.LoginWithGoogle(context.Background(), GoogleProfile{Sub: "g-1"})
	assert.Error(t, err)
}

func TestGetByIDMissing(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}
