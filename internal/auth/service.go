package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/user/entity"
	userrepo "github.com/taskdeck/taskdeck/internal/user/repo"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned uniformly for unknown email and
	// wrong password, never revealing which. Avoids user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service orchestrates registration, sign-in and bearer token resolution.
type Service struct {
	users  userrepo.Repository
	hasher PasswordHasher
	tokens *TokenIssuer
}

func NewService(users userrepo.Repository, hasher PasswordHasher, tokens *TokenIssuer) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account and issues a token for auto-login. The unique
// constraint on users.email is authoritative; the GetByEmail pre-check only
// short-circuits the common case.
func (s *Service) Register(ctx context.Context, email, password string) (*entity.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, userrepo.ErrNotFound) {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// SignIn authenticates by email and password and issues a fresh token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// CurrentUser loads the public record for an already-authenticated user id.
func (s *Service) CurrentUser(ctx context.Context, id string) (*entity.User, error) {
	return s.users.GetByID(ctx, id)
}

// ResolveToken decodes a bearer token and confirms the subject still exists.
// Any failure collapses to ErrInvalidToken; the gate fails closed.
func (s *Service) ResolveToken(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	if _, err := s.users.GetByID(ctx, claims.Subject); err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
