package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

// ErrInsufficientPoints is returned when a spend exceeds the balance.
var ErrInsufficientPoints = errors.New("insufficient points")

// ClientSessionState is the explicit session snapshot: everything the
// session persists between runs.
type ClientSessionState struct {
	Token  string       `json:"token"`
	User   *models.User `json:"user,omitempty"`
	Points int          `json:"points"`
}

// Session ties the API client to the local store. The token survives
// restarts through the store; expiry is judged locally from the JWT exp
// claim without verifying the signature, which stays the server's job.
type Session struct {
	client *Client
	store  *Store

	mu    sync.RWMutex
	state ClientSessionState
}

// NewSession restores any persisted state and pushes the stored token
// into the client.
func NewSession(apiClient *Client, store *Store) *Session {
	s := &Session{client: apiClient, store: store}

	s.state.Token = store.Token()
	if user, ok := store.User(); ok {
		s.state.User = user
	}
	s.state.Points = store.Points()

	if s.state.Token != "" {
		apiClient.SetToken(s.state.Token)
	}
	return s
}

// Client exposes the underlying API client for direct resource calls.
func (s *Session) Client() *Client {
	return s.client
}

// State returns a copy of the current session state.
func (s *Session) State() ClientSessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Login(ctx context.Context, name, username string) (*models.User, error) {
	resp, err := s.client.Login(ctx, name, username)
	if err != nil {
		return nil, err
	}
	if err := s.establish(resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *Session) Register(ctx context.Context, name, username, email string) (*models.User, error) {
	resp, err := s.client.Register(ctx, name, username, email)
	if err != nil {
		return nil, err
	}
	if err := s.establish(resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *Session) establish(resp *AuthResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Token = resp.Token
	user := resp.User
	s.state.User = &user

	if err := s.store.SetToken(resp.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := s.store.SetUser(&user); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Authenticated reports whether a token is present and not yet expired.
// The exp claim is read without signature verification; a token this
// check accepts can still be rejected server-side.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	token := s.state.Token
	s.mu.RUnlock()
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.After(time.Now())
}

// Logout drops the token and user locally. There is no server-side
// session to tear down.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Token = ""
	s.state.User = nil
	s.client.SetToken("")

	if err := s.store.SetToken(""); err != nil {
		return err
	}
	return s.store.SetUser(nil)
}

// Points returns the local reward balance.
func (s *Session) Points() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Points
}

func (s *Session) SetPoints(points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Points = points
	return s.store.SetPoints(points)
}

// SpendPoints deducts from the balance, failing when it is short.
func (s *Session) SpendPoints(amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount > s.state.Points {
		return ErrInsufficientPoints
	}
	s.state.Points -= amount
	return s.store.SetPoints(s.state.Points)
}
