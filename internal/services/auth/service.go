package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/orbitwise/fdsaas/internal/dependencies/clock"
	"github.com/orbitwise/fdsaas/internal/dependencies/digest"
	"github.com/orbitwise/fdsaas/internal/model"
	"github.com/orbitwise/fdsaas/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
	ErrReplayOrStale      = errors.New("request timestamp outside freshness window")
)

// Session is the single live authenticated session of a user
type Session struct {
	Token     string
	UserID    model.UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	// FreshnessWindow is the maximum allowed skew between a client-supplied
	// request timestamp and server time. Requests outside it are treated as
	// replays.
	FreshnessWindow time.Duration
	// SessionDuration bounds the lifetime of an issued token
	SessionDuration time.Duration
	// Issuer is the iss claim stamped on issued tokens
	Issuer string
	// SigningKey is the HS256 key for issued tokens. If empty, a random key
	// is generated at startup (sessions then do not survive a restart).
	SigningKey []byte
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		FreshnessWindow: 30 * time.Second,
		SessionDuration: time.Hour,
		Issuer:          "fdsaas",
	}
}

// Service owns user credentials and session state. It is the only writer of
// User records and of session tokens; a user holds at most one live session.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	digest  digest.Digest
	cfg     Config

	mu       sync.RWMutex
	sessions map[model.UserID]*Session
}

// New creates a new auth service
func New(store storage.Storage, clk clock.Clock, dig digest.Digest, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.FreshnessWindow == 0 {
		cfg.FreshnessWindow = def.FreshnessWindow
	}
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = def.SessionDuration
	}
	if cfg.Issuer == "" {
		cfg.Issuer = def.Issuer
	}
	if len(cfg.SigningKey) == 0 {
		key := make([]byte, 32)
		_, _ = rand.Read(key)
		cfg.SigningKey = key
	}
	return &Service{
		storage:  store,
		clock:    clk,
		digest:   dig,
		cfg:      cfg,
		sessions: make(map[model.UserID]*Session),
	}
}

// Register creates a new user from a username and (pre-digested) password.
// The username must not be taken; the storage insert is the uniqueness
// gate, so concurrent registers for one username succeed at most once.
func (s *Service) Register(ctx context.Context, username, password string) (model.UserID, error) {
	stored, err := s.digest.Sum(password)
	if err != nil {
		return "", fmt.Errorf("digesting password: %w", err)
	}

	user := &model.User{
		ID:             model.UserID(uuid.NewString()),
		Username:       username,
		PasswordDigest: stored,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Deregister removes a user and revokes any live session, so no token for a
// removed user remains valid.
func (s *Service) Deregister(ctx context.Context, userID model.UserID) error {
	if err := s.storage.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
	return nil
}

// FindByUsername returns the user registered under the given username
func (s *Service) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.storage.GetUserByUsername(ctx, username)
}

// FindByID returns the user with the given id
func (s *Service) FindByID(ctx context.Context, userID model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, userID)
}

// Login authenticates a user and issues a session token. Any prior session
// for the user is replaced in the same critical section, so there is no
// window where two tokens are live.
func (s *Service) Login(ctx context.Context, username, password string, clientTimestamp int64) (*Session, error) {
	if err := s.checkFreshness(clientTimestamp); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.digest.Verify(user.PasswordDigest, password) {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	token, err := s.issueToken(user.ID, now)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}

	s.mu.Lock()
	s.sessions[user.ID] = session
	s.mu.Unlock()

	return session, nil
}

// Logout destroys the user's live session. It fails rather than silently
// succeeding when the token does not match, so a replayed logout with a
// revoked token is rejected.
func (s *Service) Logout(userID model.UserID, token string, clientTimestamp int64) error {
	if err := s.checkFreshness(clientTimestamp); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || !tokenMatches(session.Token, token) {
		return ErrInvalidSession
	}
	delete(s.sessions, userID)
	return nil
}

// Validate checks that the token is the user's current live session and is
// neither stale nor expired. It does not destroy the session. Expiry is
// checked lazily here; no background sweep is needed.
func (s *Service) Validate(userID model.UserID, token string, clientTimestamp int64) (*Session, error) {
	if err := s.checkFreshness(clientTimestamp); err != nil {
		return nil, err
	}

	if err := s.verifyToken(token); err != nil {
		return nil, err
	}

	s.mu.RLock()
	session, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok || !tokenMatches(session.Token, token) {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a fresh login may have replaced it
		if current, ok := s.sessions[userID]; ok && tokenMatches(current.Token, token) {
			delete(s.sessions, userID)
		}
		s.mu.Unlock()
		return nil, ErrSessionExpired
	}

	return session, nil
}

// CleanExpiredSessions removes expired sessions (optional, call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, userID)
		}
	}
}

// checkFreshness rejects client timestamps outside the configured window
func (s *Service) checkFreshness(clientTimestamp int64) error {
	skew := s.clock.Now().Unix() - clientTimestamp
	if skew < 0 {
		skew = -skew
	}
	if time.Duration(skew)*time.Second > s.cfg.FreshnessWindow {
		return ErrReplayOrStale
	}
	return nil
}

// issueToken signs an HS256 JWT for the user. The random jti makes each
// issued token distinct even within the same second.
func (s *Service) issueToken(userID model.UserID, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    s.cfg.Issuer,
		Subject:   string(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionDuration)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.SigningKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// verifyToken checks the token's signature and registered claims before any
// session lookup, so garbage tokens never reach the session table.
func (s *Service) verifyToken(token string) error {
	_, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return s.cfg.SigningKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrSessionExpired
		}
		return ErrInvalidSession
	}
	return nil
}

func tokenMatches(live, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(live), []byte(presented)) == 1
}
