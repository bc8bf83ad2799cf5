// Package services contains the application services of the inventory
// client: the signed-in session and the dashboard controllers that sit
// between the terminal front end and the API client.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hackinpovo/inventory/internal/client/client"
	"github.com/hackinpovo/inventory/internal/client/models"
	"github.com/hackinpovo/inventory/internal/client/repositories/session"
	"github.com/hackinpovo/inventory/internal/common"
	"github.com/hackinpovo/inventory/internal/dbx"
	"github.com/hackinpovo/inventory/internal/logging"
)

// SessionService owns the signed-in identity.
//
// Contract:
//   - Login/Register: authenticate against the server, then persist token
//     and user in one transaction. Nothing is stored on failure.
//   - Logout: forget the session locally; always succeeds when storage does.
//   - Restore: load a persisted session without contacting the server.
//   - Current/Token: read the in-memory session.
type SessionService interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, email, password, name string) (models.Session, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (models.Session, bool, error)
	Current() (models.Session, bool)
	Token() string
}

// AuthError is returned when login or registration is rejected or fails.
// Message is the server's message, or a generic default.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

const (
	defaultLoginMessage    = "login failed"
	defaultRegisterMessage = "registration failed"
)

type sessionService struct {
	client client.Client
	db     *sql.DB
	repo   session.Repository
	logger logging.Logger

	mu      sync.RWMutex
	current *models.Session
}

// NewSessionService constructs a SessionService bound to the API client and
// the local database. The session starts anonymous until Restore or Login.
func NewSessionService(c client.Client, db *sql.DB, logger logging.Logger) SessionService {
	return &sessionService{
		client: c,
		db:     db,
		repo:   session.NewSQLiteRepository(db),
		logger: logger.With("module", "session"),
	}
}

func (s *sessionService) Login(ctx context.Context, email, password string) (models.Session, error) {
	resp, err := s.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.Session{}, authError("login", defaultLoginMessage, err)
	}
	return s.establish(ctx, resp)
}

func (s *sessionService) Register(ctx context.Context, email, password, name string) (models.Session, error) {
	resp, err := s.client.Register(ctx, models.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return models.Session{}, authError("register", defaultRegisterMessage, err)
	}
	return s.establish(ctx, resp)
}

func authError(op, fallback string, err error) *AuthError {
	msg := fallback
	var re *client.RequestError
	if errors.As(err, &re) && re.Message != "" {
		msg = re.Message
	}
	return &AuthError{Op: op, Message: msg, Err: err}
}

func (s *sessionService) establish(ctx context.Context, resp models.AuthResponse) (models.Session, error) {
	sess := models.NewSession(resp.Token, resp.User)
	if err := s.save(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("session saving error: %w", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.logger.Info(ctx, "signed in", "user_id", sess.UserID, "email", sess.Email)
	return sess, nil
}

func (s *sessionService) save(ctx context.Context, sess models.Session) error {
	user, err := json.Marshal(sess.User())
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithDB(tx)
		if err := repo.Set(ctx, common.SessionTokenKey, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionUserKey, user)
	})
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithDB(tx)
		if err := repo.Delete(ctx, common.SessionTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.SessionUserKey)
	})
	if err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}

	s.logger.Info(ctx, "signed out")
	return nil
}

func (s *sessionService) Restore(ctx context.Context) (models.Session, bool, error) {
	token, err := s.repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return models.Session{}, false, err
	}
	rawUser, err := s.repo.Get(ctx, common.SessionUserKey)
	if err != nil {
		return models.Session{}, false, err
	}
	if len(token) == 0 || len(rawUser) == 0 {
		return models.Session{}, false, nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.logger.Warn(ctx, "persisted user is unreadable, staying anonymous", "error", err)
		return models.Session{}, false, nil
	}

	sess := models.NewSession(string(token), user)

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.logger.Debug(ctx, "session restored", "user_id", sess.UserID)
	return sess, true, nil
}

func (s *sessionService) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

func (s *sessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}
