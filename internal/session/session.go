package session

import (
	"log"
	"sync"

	"nusacrm/internal/authz"
	"nusacrm/internal/models"
)

// Session is the single operator session. It is constructed once and passed
// down explicitly; mutation happens only through Login, ApplyRefresh and
// Logout.
type Session struct {
	mu    sync.RWMutex
	store Store
	creds Credentials
}

func New(store Store) *Session {
	s := &Session{store: store}
	if store != nil {
		creds, err := store.Load()
		if err != nil {
			log.Printf("[session][load] ignoring unreadable credentials: %v", err)
		} else if creds != nil {
			s.creds = *creds
		}
	}
	return s
}

// Login stores a fresh credential pair and profile and persists them.
func (s *Session) Login(user models.User, accessToken, refreshToken string) error {
	s.mu.Lock()
	s.creds = Credentials{AccessToken: accessToken, RefreshToken: refreshToken, User: &user}
	creds := s.creds
	s.mu.Unlock()
	return s.persist(&creds)
}

// ApplyRefresh swaps in the token pair returned by the refresh exchange.
// An empty new refresh token keeps the old one (the backend may rotate or
// not).
func (s *Session) ApplyRefresh(accessToken, refreshToken string) error {
	s.mu.Lock()
	s.creds.AccessToken = accessToken
	if refreshToken != "" {
		s.creds.RefreshToken = refreshToken
	}
	creds := s.creds
	s.mu.Unlock()
	return s.persist(&creds)
}

// Logout wipes the session. There is no backend invalidation endpoint, so
// this is a pure local clear.
func (s *Session) Logout() {
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			log.Printf("[session][logout] clear store: %v", err)
		}
	}
}

func (s *Session) persist(creds *Credentials) error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(creds)
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.AccessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.RefreshToken
}

func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds.User == nil {
		return nil
	}
	u := *s.creds.User
	return &u
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.AccessToken != "" && s.creds.User != nil
}

// Role prefers the role baked into the access token; if the token cannot be
// decoded it falls back to the stored profile.
func (s *Session) Role() authz.Role {
	s.mu.RLock()
	token := s.creds.AccessToken
	user := s.creds.User
	s.mu.RUnlock()

	if claims, err := DecodeClaims(token); err == nil && claims.Role != "" {
		return authz.Role(claims.Role)
	}
	if user != nil {
		return authz.Role(user.Role)
	}
	return ""
}
