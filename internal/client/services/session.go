// Package services contains the client-side state layer: the session
// manager owning the authenticated identity, and the recipe store mirroring
// the server's collection.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipemanager/internal/client/client"
	"github.com/dmitrijs2005/recipemanager/internal/client/models"
	"github.com/dmitrijs2005/recipemanager/internal/client/repositories/session"
	"github.com/dmitrijs2005/recipemanager/internal/dbx"
	"github.com/dmitrijs2005/recipemanager/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Fallback display messages when the server error body carries none.
const (
	loginFailedMsg    = "Login failed. Please check your credentials."
	registerFailedMsg = "Registration failed. Please try again."
)

// SessionManager owns the process's single authenticated session: the
// opaque bearer token and the identity it was issued to. The pair is
// mutated only as a unit — in memory and in the local database — so no
// observer ever sees a credential without an identity or vice versa.
type SessionManager struct {
	mu     sync.Mutex
	client client.Client
	db     *sql.DB
	log    logging.Logger

	token string
	user  *models.User

	loading bool
	errMsg  string

	onEnded []func()
}

func NewSessionManager(c client.Client, db *sql.DB, log logging.Logger) *SessionManager {
	return &SessionManager{client: c, db: db, log: log}
}

func (s *SessionManager) repo() session.Repository {
	return session.NewSQLiteRepository(s.db)
}

// Restore loads a previously persisted session from local storage. A
// half-written pair (one key present without the other, or an unreadable
// identity record) is discarded and wiped rather than restored.
func (s *SessionManager) Restore(ctx context.Context) error {
	repo := s.repo()

	tokenRaw, err := repo.Get(ctx, session.KeyToken)
	if err != nil {
		return fmt.Errorf("restoring token: %w", err)
	}
	userRaw, err := repo.Get(ctx, session.KeyUser)
	if err != nil {
		return fmt.Errorf("restoring user: %w", err)
	}

	if len(tokenRaw) == 0 || len(userRaw) == 0 {
		if len(tokenRaw) != 0 || len(userRaw) != 0 {
			s.log.Warn(ctx, "discarding incomplete persisted session")
			if err := repo.Clear(ctx); err != nil {
				return fmt.Errorf("clearing incomplete session: %w", err)
			}
		}
		return nil
	}

	var user models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		s.log.Warn(ctx, "discarding unreadable persisted identity", "err", err)
		if clearErr := repo.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clearing unreadable session: %w", clearErr)
		}
		return nil
	}

	s.mu.Lock()
	s.token = string(tokenRaw)
	s.user = &user
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "username", user.Username)
	return nil
}

// Login authenticates against the server. On success the returned
// credential and identity are stored atomically, in memory and on disk.
// On failure the prior session state is untouched and a display message
// derived from the server error is recorded.
func (s *SessionManager) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	s.begin()
	defer s.finish()

	resp, err := s.client.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.fail(client.MessageOr(err, loginFailedMsg))
		return nil, err
	}

	if err := s.setAuthData(ctx, resp.Token, resp.User); err != nil {
		s.fail("Failed to save session.")
		return nil, err
	}

	s.log.Info(ctx, "login successful", "username", resp.User.Username)
	return resp, nil
}

// Register creates a new account. Same contract as Login: atomic
// credential+identity set on success, untouched state plus a recorded
// message on failure.
func (s *SessionManager) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	s.begin()
	defer s.finish()

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		s.fail(client.MessageOr(err, registerFailedMsg))
		return nil, err
	}

	if err := s.setAuthData(ctx, resp.Token, resp.User); err != nil {
		s.fail("Failed to save session.")
		return nil, err
	}

	s.log.Info(ctx, "registration successful", "username", resp.User.Username)
	return resp, nil
}

// setAuthData persists the token and identity in a single transaction and
// then installs them in memory under one lock acquisition.
func (s *SessionManager) setAuthData(ctx context.Context, token string, user models.User) error {
	userRaw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := session.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, session.KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyUser, userRaw)
	})
	if err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout ends the session as an explicit user action.
func (s *SessionManager) Logout(ctx context.Context) error {
	return s.endSession(ctx)
}

// EndSession is the forced-termination path used by the access interceptor
// on a 401. Storage errors are logged rather than returned because the
// caller is a response handler with nowhere to surface them.
func (s *SessionManager) EndSession() {
	if err := s.endSession(context.Background()); err != nil {
		s.log.Error(context.Background(), "failed to clear persisted session", "err", err)
	}
}

func (s *SessionManager) endSession(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return session.NewSQLiteRepository(tx).Clear(ctx)
	})

	// Memory is cleared regardless of storage outcome so the pair never
	// survives a logout half-way.
	s.mu.Lock()
	s.token = ""
	s.user = nil
	subscribers := make([]func(), len(s.onEnded))
	copy(subscribers, s.onEnded)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
	return err
}

// OnSessionEnded registers fn to run whenever the session ends, whether by
// logout or forced termination. The recipe store subscribes its Reset here
// so no cached records outlive the session that fetched them.
func (s *SessionManager) OnSessionEnded(fn func()) {
	s.mu.Lock()
	s.onEnded = append(s.onEnded, fn)
	s.mu.Unlock()
}

// IsAuthenticated is derived from the credential; it is never stored.
func (s *SessionManager) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *SessionManager) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns a copy of the authenticated identity, or nil when
// signed out.
func (s *SessionManager) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionManager) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SessionManager) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// TokenExpiry reports the expiry claim of the current bearer token, when
// the token is a JWT carrying one. The claim is read without signature
// verification; it is display-only and never used for gating.
func (s *SessionManager) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *SessionManager) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *SessionManager) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *SessionManager) fail(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
