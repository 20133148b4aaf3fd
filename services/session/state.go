// Package session holds the per-visitor state: signed-in user, language,
// search location, navigation path, bookings and the latest discovery result.
package session

import (
	"errors"
	"strings"
	"time"

	"eventkompass/models"
	"eventkompass/services/booking"
	"eventkompass/services/navigation"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidLanguage = errors.New("language must be de or en")
)

// State is the full session. It is only mutated inside Store.Update, which
// serializes writers of the same session.
type State struct {
	ID             string                `json:"id"`
	User           *models.User          `json:"user,omitempty"`
	Language       models.Language       `json:"language"`
	Location       string                `json:"location"`
	Path           string                `json:"path"`
	Bookings       *booking.Store        `json:"bookings"`
	DiscoveryToken uint64                `json:"discoveryToken"`
	Discovery      *models.DiscoveryView `json:"discovery,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// Defaults seed a new session.
type Defaults struct {
	Language models.Language
	Location string
}

func newState(id string, d Defaults, now time.Time) State {
	return State{
		ID:        id,
		Language:  models.ParseLanguage(string(d.Language), models.LanguageDE),
		Location:  d.Location,
		Path:      navigation.Home.Path,
		Bookings:  booking.NewStore(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy safe to hand out of a store.
func (s State) Clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Bookings != nil {
		out.Bookings = booking.NewStore(s.Bookings.List()...)
	} else {
		out.Bookings = booking.NewStore()
	}
	if s.Discovery != nil {
		d := *s.Discovery
		d.Events = append([]models.ParsedEvent(nil), s.Discovery.Events...)
		d.Sources = append([]models.SourceCard(nil), s.Discovery.Sources...)
		out.Discovery = &d
	}
	return out
}

func (s *State) SignedIn() bool {
	return s.User != nil
}

// SetUser signs u in. Bookings belong to the signed-in user, so switching to
// another account starts with an empty list.
func (s *State) SetUser(u models.User) {
	if s.User != nil && s.User.ID != u.ID {
		s.Bookings.Clear()
	}
	s.User = &u
}

// Logout drops the user together with every booking and returns home.
func (s *State) Logout() {
	s.User = nil
	s.Bookings.Clear()
	s.Path = navigation.Home.Path
}

func (s *State) SetLanguage(lang models.Language) error {
	if !lang.Valid() {
		return ErrInvalidLanguage
	}
	s.Language = lang
	return nil
}

func (s *State) ToggleLanguage() models.Language {
	s.Language = s.Language.Toggle()
	return s.Language
}

// SetLocation replaces the search location. Blank input keeps the current one.
func (s *State) SetLocation(location string) bool {
	location = strings.TrimSpace(location)
	if location == "" || location == s.Location {
		return false
	}
	s.Location = location
	return true
}

// Navigate resolves path and stores the resulting route.
func (s *State) Navigate(path string) navigation.View {
	view := navigation.Resolve(path, s.SignedIn())
	s.Path = view.Path
	return view
}

// View resolves the current path again, so a profile path left behind by a
// logout renders home.
func (s *State) View() navigation.View {
	return navigation.Resolve(s.Path, s.SignedIn())
}

// BeginDiscovery hands out the token of a new discovery request.
func (s *State) BeginDiscovery() uint64 {
	s.DiscoveryToken++
	return s.DiscoveryToken
}

// AcceptDiscovery stores view if its token is still the latest one issued.
// Results of superseded requests are dropped.
func (s *State) AcceptDiscovery(view models.DiscoveryView) bool {
	if view.Token != s.DiscoveryToken {
		return false
	}
	s.Discovery = &view
	return true
}

// AddBooking stores ev for the signed-in user.
func (s *State) AddBooking(ev models.EventItem) (bool, error) {
	if !s.SignedIn() {
		return false, booking.ErrLoginRequired
	}
	return s.Bookings.Put(ev)
}

func (s *State) RemoveBooking(id string) (bool, error) {
	if !s.SignedIn() {
		return false, booking.ErrLoginRequired
	}
	return s.Bookings.Remove(id), nil
}
