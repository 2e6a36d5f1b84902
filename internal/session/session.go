package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the cached user identity attached to a credential.
type Identity struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Credential is the single persisted session record: a bearer token
// plus an optional cached identity.
type Credential struct {
	Token string    `json:"token"`
	User  *Identity `json:"user,omitempty"`
}

// Validator checks a token against the backend. Implemented by the
// API client.
type Validator interface {
	ValidateToken(ctx context.Context, token string) (bool, error)
}

// Store owns the current credential. It is the single source of truth
// for "is the user authenticated" and the only component that touches
// the session file.
type Store struct {
	mu        sync.Mutex
	path      string
	cred      *Credential
	validated bool
}

// Open loads any persisted credential from path. A missing or
// unparseable file means "no credential"; corruption is never fatal.
func Open(path string) *Store {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var cred Credential
	if err := json.Unmarshal(raw, &cred); err != nil || cred.Token == "" {
		return s
	}
	s.cred = &cred
	return s
}

// Token implements api.TokenSource. Empty when no credential is held.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.Token
}

// Credential returns a copy of the current credential, or nil.
func (s *Store) Credential() *Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil
	}
	c := *s.cred
	if s.cred.User != nil {
		u := *s.cred.User
		c.User = &u
	}
	return &c
}

// IsAuthenticated is true iff a credential is present and was either
// issued this session or confirmed by Validate.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred != nil && s.validated
}

// Set stores a freshly issued credential and persists it. When the
// identity is absent it is derived from the token's claims.
func (s *Store) Set(cred Credential) error {
	if cred.User == nil {
		cred.User = IdentityFromToken(cred.Token)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
	s.validated = true
	return s.persist()
}

// Clear forgets the credential and removes the session file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	s.validated = false
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// Validate confirms a persisted credential against the backend. This
// is the only place invalid-token cleanup happens: an explicit
// "invalid" answer or any validation failure clears the credential.
func (s *Store) Validate(ctx context.Context, v Validator) bool {
	token := s.Token()
	if token == "" {
		return false
	}
	ok, err := v.ValidateToken(ctx, token)
	if err != nil || !ok {
		s.Clear()
		return false
	}
	s.mu.Lock()
	s.validated = true
	s.mu.Unlock()
	return true
}

// persist writes the session file. Caller holds the lock.
func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	raw, err := json.Marshal(s.cred)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// IdentityFromToken extracts display identity from the token's claims
// without verifying the signature. Returns nil when the token isn't a
// parseable JWT. Display only; the backend remains the authority.
func IdentityFromToken(token string) *Identity {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	id := &Identity{
		ID:       firstString(claims, "sub", "nameid", "id"),
		Username: firstString(claims, "unique_name", "username", "name"),
		Email:    firstString(claims, "email"),
		Role:     firstString(claims, "role"),
	}
	if *id == (Identity{}) {
		return nil
	}
	return id
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
