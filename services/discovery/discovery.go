// Package discovery runs the search and category pipeline: classify, fetch,
// parse, and book from a discovery result.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"eventkompass/models"
	"eventkompass/services/classifier"
	ai "eventkompass/services/intelligence"
	"eventkompass/services/metrics"
	"eventkompass/services/navigation"
	"eventkompass/services/parser"
	"eventkompass/services/session"
)

var ErrNoDiscovery = errors.New("no discovery result to book from")

// Service ties the gateway, classifier and session state together. Gateway
// calls run outside the session lock.
type Service struct {
	Gateway    ai.Gateway
	Classifier *classifier.QueryClassifier
	Sessions   *session.Service
	Metrics    *metrics.Service
	Logger     *zap.Logger
	Now        func() time.Time
}

func NewService(gw ai.Gateway, sessions *session.Service, m *metrics.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Gateway:    gw,
		Classifier: classifier.New(gw),
		Sessions:   sessions,
		Metrics:    m,
		Logger:     logger,
		Now:        time.Now,
	}
}

// Search classifies query and moves the session to the matching discovery page.
func (s *Service) Search(ctx context.Context, sessionID, query string) (models.SearchResponse, error) {
	st, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return models.SearchResponse{}, err
	}

	intent, err := s.Classifier.Classify(ctx, query, st.Location)
	if err != nil {
		return models.SearchResponse{}, err
	}

	st, err = s.Sessions.Update(ctx, sessionID, func(st *session.State) error {
		if intent.LocationChanged {
			st.SetLocation(intent.Location)
		}
		st.Navigate(intent.Path())
		return nil
	})
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("store search intent: %w", err)
	}

	s.Logger.Info("Search classified",
		zap.String("session", sessionID),
		zap.String("category", string(intent.Category)),
		zap.Bool("locationChanged", intent.LocationChanged),
		zap.Bool("fallback", intent.Fallback))

	return models.SearchResponse{
		Category:        intent.Category,
		Location:        st.Location,
		LocationChanged: intent.LocationChanged,
		Path:            st.Path,
		Fallback:        intent.Fallback,
	}, nil
}

// Discover fetches events of category for the session's location and language.
// accepted is false when a newer discovery request of the same session was
// started while this one was in flight; the view is still returned.
func (s *Service) Discover(ctx context.Context, sessionID string, category models.Category) (view models.DiscoveryView, accepted bool, err error) {
	var (
		token    uint64
		location string
		lang     models.Language
	)
	_, err = s.Sessions.Update(ctx, sessionID, func(st *session.State) error {
		token = st.BeginDiscovery()
		location = st.Location
		lang = st.Language
		st.Navigate(navigation.DiscoveryPath(category))
		return nil
	})
	if err != nil {
		return view, false, err
	}

	res := s.Gateway.FetchEvents(ctx, category, location, lang)
	parsed := parser.Parse(res.Text)

	view = models.DiscoveryView{
		Category:  category,
		Location:  location,
		Language:  lang,
		Theme:     category.Theme(),
		Text:      res.Text,
		Intro:     parsed.Intro,
		Events:    parsed.Events,
		Sources:   parser.SourceCards(res.Sources),
		Failed:    res.Failed,
		Token:     token,
		Grounding: string(res.Grounding),
	}

	// A client that went away still gets its result recorded if it is current.
	_, err = s.Sessions.Update(context.WithoutCancel(ctx), sessionID, func(st *session.State) error {
		accepted = st.AcceptDiscovery(view)
		return nil
	})
	if err != nil {
		return view, false, fmt.Errorf("store discovery: %w", err)
	}
	if !accepted {
		s.Logger.Debug("Discarded superseded discovery", zap.String("session", sessionID), zap.Uint64("token", token))
	}
	return view, accepted, nil
}

// Current returns the last accepted discovery of the session.
func (s *Service) Current(ctx context.Context, sessionID string) (*models.DiscoveryView, error) {
	st, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return st.Discovery, nil
}
