package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Persisted storage keys, matching the names the pages use.
const (
	keyToken         = "token"
	keyUserName      = "userName"
	keySelectedID    = "selectedPropertyId"
	keyRedirect      = "redirectAfterLogin"
	keyResetEmail    = "resetEmail"
	loginDestination = "login"
)

// SessionStore is the client's persisted key-value state: the bearer
// token, display name, and navigation scratch values. It is the local
// analogue of the pages' browser storage, kept as a JSON file so state
// survives restarts.
type SessionStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenSessionStore loads the store at path, starting empty when the file
// does not exist yet.
func OpenSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{path: path, values: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		// A corrupt store behaves like a fresh one.
		s.values = map[string]string{}
	}
	return s, nil
}

func (s *SessionStore) get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *SessionStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

func (s *SessionStore) delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return s.flushLocked()
}

func (s *SessionStore) flushLocked() error {
	data, err := json.Marshal(s.values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// LoggedIn reports whether a session token is present.
func (s *SessionStore) LoggedIn() bool {
	return s.get(keyToken) != ""
}

// Token returns the persisted bearer token, empty when logged out.
func (s *SessionStore) Token() string {
	return s.get(keyToken)
}

// UserName returns the persisted display name.
func (s *SessionStore) UserName() string {
	return s.get(keyUserName)
}

// SaveSession persists a fresh login.
func (s *SessionStore) SaveSession(token, userName string) error {
	if err := s.set(keyToken, token); err != nil {
		return err
	}
	return s.set(keyUserName, userName)
}

// Logout clears the session. Navigation scratch values go with it.
func (s *SessionStore) Logout() error {
	return s.delete(keyToken, keyUserName, keySelectedID, keyRedirect, keyResetEmail)
}

// SetResetEmail remembers which address a password reset was started for.
func (s *SessionStore) SetResetEmail(email string) error {
	return s.set(keyResetEmail, email)
}

// ResetEmail returns the address a password reset was started for.
func (s *SessionStore) ResetEmail() string {
	return s.get(keyResetEmail)
}

// SelectedPropertyID returns the listing chosen via ViewDetails.
func (s *SessionStore) SelectedPropertyID() string {
	return s.get(keySelectedID)
}

// ViewDetails records the chosen listing and decides where navigation
// goes: straight to the destination with a live session, or to the login
// page with the destination persisted for after login.
func (s *SessionStore) ViewDetails(propertyID, destination string) (string, error) {
	if err := s.set(keySelectedID, propertyID); err != nil {
		return "", err
	}
	if s.LoggedIn() {
		return destination, nil
	}
	if err := s.set(keyRedirect, destination); err != nil {
		return "", err
	}
	return loginDestination, nil
}

// TakeRedirect consumes the post-login destination, returning fallback
// when none was persisted.
func (s *SessionStore) TakeRedirect(fallback string) (string, error) {
	dest := s.get(keyRedirect)
	if dest == "" {
		return fallback, nil
	}
	if err := s.delete(keyRedirect); err != nil {
		return "", err
	}
	return dest, nil
}
