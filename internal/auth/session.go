// Package auth keeps the single signed-in user of the login stub.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/models"
)

// StateFile is the name of the file holding the signed-in user.
const StateFile = "user.json"

// Session is the login state of the process.
type Session struct {
	mu       sync.RWMutex
	loggedIn bool
	user     *models.User
	path     string
	logger   *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession returns a session restored from stateDir when a saved user exists there.
// An empty stateDir keeps the session in memory only.
func NewSession(stateDir string, opts ...Option) *Session {
	s := &Session{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if stateDir == "" {
		return s
	}
	s.path = filepath.Join(stateDir, StateFile)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read saved session", zap.Error(err))
		}
		return s
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.logger.Warn("ignoring corrupt saved session", zap.String("path", s.path), zap.Error(err))
		return s
	}
	s.user = &u
	s.loggedIn = true
	return s
}

// Login marks the session signed in. A non-nil user is remembered and saved.
func (s *Session) Login(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	if user == nil {
		return nil
	}
	u := *user
	s.user = &u
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout clears the session and its saved user.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.user = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// LoggedIn reports whether someone is signed in.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
