package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service creates sessions with the configured defaults and resolves ids
// presented by clients.
type Service struct {
	Store    Store
	Defaults Defaults
	Logger   *zap.Logger
}

func NewService(store Store, defaults Defaults, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Store: store, Defaults: defaults, Logger: logger}
}

// Create starts a fresh session.
func (s *Service) Create(ctx context.Context) (State, error) {
	st := newState(uuid.NewString(), s.Defaults, time.Now())
	if err := s.Store.Create(ctx, st); err != nil {
		return State{}, err
	}
	s.Logger.Debug("Session created", zap.String("session", st.ID))
	return st, nil
}

// Resolve returns the session for id, creating a new one when id is empty or
// unknown. created reports whether a new id was issued.
func (s *Service) Resolve(ctx context.Context, id string) (st State, created bool, err error) {
	if id != "" {
		st, err = s.Store.Get(ctx, id)
		if err == nil {
			return st, false, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return State{}, false, err
		}
	}
	st, err = s.Create(ctx)
	return st, err == nil, err
}

func (s *Service) Get(ctx context.Context, id string) (State, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, fn func(*State) error) (State, error) {
	return s.Store.Update(ctx, id, fn)
}
