package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"eventkompass/models"
	"eventkompass/services/booking"
	"eventkompass/services/parser"
	"eventkompass/services/session"
)

const descriptionRunes = 100

// BookingRequest books either an explicit event row or, without a title, the
// session's current discovery result.
type BookingRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category" binding:"omitempty,category"`
	URL         string `json:"url" binding:"omitempty,url"`
}

// Book derives the event and adds it to the session's bookings. added is false
// when the event was already booked.
func (s *Service) Book(ctx context.Context, sessionID string, req BookingRequest) (ev models.EventItem, added bool, err error) {
	_, err = s.Sessions.Update(ctx, sessionID, func(st *session.State) error {
		if !st.SignedIn() {
			return booking.ErrLoginRequired
		}

		var buildErr error
		ev, buildErr = s.buildEvent(st, req)
		if buildErr != nil {
			return buildErr
		}
		added, buildErr = st.AddBooking(ev)
		return buildErr
	})
	if err != nil {
		return models.EventItem{}, false, err
	}

	action := "duplicate"
	if added {
		action = "add"
	}
	s.Metrics.RecordBooking(action)
	s.Logger.Info("Booking stored", zap.String("session", sessionID), zap.String("event", ev.ID), zap.Bool("added", added))
	return ev, added, nil
}

// Cancel removes a booking. Unknown ids are not an error.
func (s *Service) Cancel(ctx context.Context, sessionID, eventID string) (bool, error) {
	var removed bool
	_, err := s.Sessions.Update(ctx, sessionID, func(st *session.State) error {
		var err error
		removed, err = st.RemoveBooking(eventID)
		return err
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.Metrics.RecordBooking("remove")
	}
	return removed, nil
}

func (s *Service) buildEvent(st *session.State, req BookingRequest) (models.EventItem, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return s.eventFromDiscovery(st)
	}

	category := models.DefaultCategory
	if c, ok := models.LookupCategory(req.Category); ok {
		category = c
	} else if st.Discovery != nil {
		category = st.Discovery.Category
	}
	location := firstNonEmpty(req.Location, st.Location)
	date := firstNonEmpty(req.Date, formatToday(s.Now(), st.Language))

	return models.EventItem{
		ID:          booking.DeriveEventID(category, location, title, date),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Location:    location,
		Date:        date,
		Category:    category,
		URL:         strings.TrimSpace(req.URL),
	}, nil
}

// eventFromDiscovery books the discovery page as a whole: the title is the
// first substantial line of the response text.
func (s *Service) eventFromDiscovery(st *session.State) (models.EventItem, error) {
	d := st.Discovery
	if d == nil || d.Failed {
		return models.EventItem{}, ErrNoDiscovery
	}

	title := parser.Headline(d.Text, fmt.Sprintf("%s Event in %s", d.Category, d.Location))
	date := formatToday(s.Now(), st.Language)

	ev := models.EventItem{
		ID:          booking.DeriveEventID(d.Category, d.Location, title, date),
		Title:       title,
		Description: truncate(d.Text, descriptionRunes) + "...",
		Location:    d.Location,
		Date:        date,
		Category:    d.Category,
	}
	if len(d.Sources) > 0 {
		ev.URL = d.Sources[0].URI
	}
	return ev, nil
}

func formatToday(now time.Time, lang models.Language) string {
	if lang == models.LanguageEN {
		return now.Format("1/2/2006")
	}
	return now.Format("2.1.2006")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
