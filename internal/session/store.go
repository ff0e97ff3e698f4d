package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is the session lifetime mandated by spec.md §4.3. Tests may
// override it via Store.ttl (see NewStoreWithTTL) to avoid waiting 24h.
const DefaultTTL = 24 * time.Hour

// sweepInterval is how often the background goroutine evicts expired
// sessions. Spec.md calls for hourly sweeps regardless of TTL.
const sweepInterval = 1 * time.Hour

// Store is the single in-memory token->session map. It is never
// DB-backed: restarting the process drops every token. It does not touch
// the character's persisted owner_id; that field is written by the kernel.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	byChar   map[string]string // characterID -> token, for O(1) ownership checks
	ttl      time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewStore creates a session store with the spec-mandated 24h TTL and
// starts its hourly sweep goroutine.
func NewStore(logger *slog.Logger) *Store {
	return NewStoreWithTTL(DefaultTTL, logger)
}

// NewStoreWithTTL creates a session store with a custom TTL. Used by tests
// and by the SESSION_TTL config override (see SPEC_FULL.md §6).
func NewStoreWithTTL(ttl time.Duration, logger *slog.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		byChar:   make(map[string]string),
		ttl:      ttl,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Close stops the sweep goroutine. Safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Store) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			n := s.sweep(time.Now())
			if n > 0 && s.logger != nil {
				s.logger.Info("session sweep evicted expired sessions", "count", n)
			}
		}
	}
}

func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			delete(s.byChar, sess.CharacterID)
			evicted++
		}
	}
	return evicted
}

// Claim creates a new session binding playerID to characterID. If a live
// session already controls the character for the same player, that
// session is returned unchanged: claim is idempotent for the same player
// (spec.md §4.3). If a different player holds a live session, it fails
// with ErrAlreadyControlled.
func (s *Store) Claim(ctx context.Context, playerID, characterID string) (*Session, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byChar[characterID]; ok {
		if sess, ok := s.sessions[existing]; ok && !sess.Expired(now) {
			if sess.PlayerID == playerID {
				return sess, nil
			}
			return nil, ErrAlreadyControlled
		}
		delete(s.sessions, existing)
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	sess := &Session{
		Token:        token,
		PlayerID:     playerID,
		CharacterID:  characterID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(s.ttl),
	}
	s.sessions[token] = sess
	s.byChar[characterID] = token
	return sess, nil
}

// Validate returns the live session for a token, or ErrInvalidToken if it
// is unknown or expired. On success it updates the session's last-activity
// timestamp.
func (s *Store) Validate(ctx context.Context, token string) (*Session, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	if sess.Expired(now) {
		delete(s.sessions, token)
		delete(s.byChar, sess.CharacterID)
		return nil, ErrInvalidToken
	}
	sess.LastActivity = now
	return sess, nil
}

// Release ends a session early, freeing its character for scheduler
// control or for another player to claim.
func (s *Store) Release(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return ErrInvalidToken
	}
	delete(s.sessions, token)
	delete(s.byChar, sess.CharacterID)
	return nil
}

// CanControl reports whether token currently owns characterID.
func (s *Store) CanControl(ctx context.Context, token, characterID string) bool {
	sess, err := s.Validate(ctx, token)
	if err != nil {
		return false
	}
	return sess.CharacterID == characterID
}

// ReleaseCharacter forcibly drops any session controlling characterID.
// Used by the kernel's character-delete cascade.
func (s *Store) ReleaseCharacter(characterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.byChar[characterID]; ok {
		delete(s.sessions, token)
		delete(s.byChar, characterID)
	}
}

func newToken() (string, error) {
	buf := make([]byte, 16) // 128 bits
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
