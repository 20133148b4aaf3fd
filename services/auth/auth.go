// Package auth is the simulated sign-in of the service. There is no real
// identity provider: any identifier signs in, only accounts registered in this
// process have their password checked.
package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"eventkompass/models"
)

const (
	idPrefix        = "EK-"
	defaultID       = "EK-98231"
	defaultName     = "Gast"
	defaultEmail    = "user@eventkompass.de"
	defaultLocation = "Darmstadt"

	minID         = 10000
	idSpace       = 90000
	randomIDTries = 32
)

var (
	ErrInvalidCredentials = errors.New("invalid id or password")
	ErrNoFreeID           = errors.New("no account id left")
)

type AuthService interface {
	Login(ctx context.Context, identifier, name, password string) (*models.User, error)
	Register(ctx context.Context, name, email, password string) (*Registration, error)
}

// Registration is shown to the visitor once after signing up.
type Registration struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

type account struct {
	user         models.User
	passwordHash []byte
}

// MockAuthService waits Delay before answering to mimic a remote call.
type MockAuthService struct {
	Delay  time.Duration
	Logger *zap.Logger

	mu       sync.RWMutex
	accounts map[string]account
}

func NewMockAuthService(delay time.Duration, logger *zap.Logger) *MockAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockAuthService{Delay: delay, Logger: logger, accounts: make(map[string]account)}
}

func (s *MockAuthService) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Login signs in identifier. Identifiers starting with EK- are kept as the
// user id, anything else maps to the demo account.
func (s *MockAuthService) Login(ctx context.Context, identifier, name, password string) (*models.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	identifier = strings.TrimSpace(identifier)

	s.mu.RLock()
	acc, registered := s.accounts[identifier]
	s.mu.RUnlock()
	if registered {
		if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
			s.Logger.Info("Login rejected", zap.String("id", identifier))
			return nil, ErrInvalidCredentials
		}
		u := acc.user
		return &u, nil
	}

	u := &models.User{
		ID:       defaultID,
		Name:     strings.TrimSpace(name),
		Email:    defaultEmail,
		Location: defaultLocation,
	}
	if strings.HasPrefix(identifier, idPrefix) {
		u.ID = identifier
	}
	if strings.Contains(identifier, "@") {
		u.Email = identifier
	}
	if u.Name == "" {
		u.Name = defaultName
	}
	return u, nil
}

// Register creates an account with a fresh EK-xxxxx id.
func (s *MockAuthService) Register(ctx context.Context, name, email, password string) (*Registration, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		s.Logger.Warn("Registration refused", zap.Int("accounts", len(s.accounts)))
		return nil, err
	}
	s.accounts[id] = account{
		user: models.User{
			ID:       id,
			Name:     strings.TrimSpace(name),
			Email:    strings.TrimSpace(email),
			Location: defaultLocation,
		},
		passwordHash: hash,
	}
	s.Logger.Info("Account registered", zap.String("id", id))

	return &Registration{ID: id, Password: password, Email: email, Name: name}, nil
}

// newID picks a random free id and falls back to the first free one once the
// id space gets crowded. Caller holds s.mu.
func (s *MockAuthService) newID() (string, error) {
	if len(s.accounts) >= idSpace {
		return "", ErrNoFreeID
	}
	for range randomIDTries {
		id := formatID(minID + rand.IntN(idSpace))
		if _, taken := s.accounts[id]; !taken {
			return id, nil
		}
	}
	for n := minID; n < minID+idSpace; n++ {
		id := formatID(n)
		if _, taken := s.accounts[id]; !taken {
			return id, nil
		}
	}
	return "", ErrNoFreeID
}

func formatID(n int) string {
	return fmt.Sprintf("%s%d", idPrefix, n)
}
