package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hackinpovo/inventory/internal/common"
	"github.com/hackinpovo/inventory/internal/server/auth"
	"github.com/hackinpovo/inventory/internal/server/config"
	"github.com/hackinpovo/inventory/internal/server/ids"
)

var errInvalidCredentials = common.Unauthorized("invalid email or password")

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	now                         func() time.Time
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, "", common.Invalid("password is too long")
		}
		return nil, "", err
	}

	id, err := ids.Generate(ids.UserPrefix)
	if err != nil {
		return nil, "", err
	}

	user, err := s.repo.Create(ctx, &User{
		ID:           id,
		Email:        strings.TrimSpace(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials and issues a fresh access token. Unknown
// emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", errInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, common.Unauthorized("token expired")
		}
		return nil, common.Unauthorized("invalid token")
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Unauthorized("invalid token")
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
}
