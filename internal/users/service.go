package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/telemetry"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Sign(id auth.Identity) (string, error)
}

type Service struct {
	Repo   Repo
	Hasher auth.PasswordHasher
	Tokens TokenIssuer
}

func NewService(repo Repo, hasher auth.PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{Repo: repo, Hasher: hasher, Tokens: tokens}
}

// Session is a signed-in user and their token.
type Session struct {
	User  User
	Token string
}

// Register creates a password account. Emails are unique, case-insensitively.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	email := normalizeEmail(req.Email)
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return Session{}, err
	}
	user, err := s.Repo.Create(ctx, User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return Session{}, err
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	return s.session(user)
}

// Login checks a password and issues a token. Unknown emails and wrong
// passwords fail identically.
func (s *Service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if user.PasswordHash == "" {
		return Session{}, ErrInvalidCredentials
	}
	if err := s.Hasher.Verify(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	return s.session(user)
}

// LoginWithGoogle signs in the account matching the Google email, creating one
// on first login.
func (s *Service) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(profile.Sub) == "" || strings.TrimSpace(profile.Email) == "" {
		return Session{}, errors.New("google profile missing sub or email")
	}
	email := normalizeEmail(profile.Email)
	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		user, err = s.Repo.Create(ctx, User{
			ID:         "google:" + profile.Sub,
			Name:       strings.TrimSpace(profile.Name),
			Email:      email,
			PictureURL: profile.Picture,
		})
		if err == nil {
			telemetry.Info("user.registered", map[string]any{"user_id": user.ID, "provider": "google"})
		}
	}
	if err != nil {
		return Session{}, err
	}
	return s.session(user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) session(user User) (Session, error) {
	token, err := s.Tokens.Sign(auth.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.PictureURL,
	})
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{User: user, Token: token}, nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil || s.Tokens == nil {
		return errors.New("users service not configured")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
