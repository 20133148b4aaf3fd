package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventkompass/models"
	"eventkompass/services/booking"
	ai "eventkompass/services/intelligence"
	"eventkompass/services/session"
)

type stubGateway struct {
	events         ai.EventsResult
	classification ai.Classification
	// release, when set, blocks FetchEvents for the given location until closed.
	release map[string]chan struct{}
	fetched chan string
}

func (s *stubGateway) FetchEvents(_ context.Context, _ models.Category, location string, _ models.Language) ai.EventsResult {
	if s.fetched != nil {
		s.fetched <- location
	}
	if ch, ok := s.release[location]; ok {
		<-ch
	}
	res := s.events
	res.Text = res.Text + " " + location
	return res
}

func (s *stubGateway) ClassifyQuery(context.Context, string) ai.Classification {
	return s.classification
}

func (s *stubGateway) Transcribe(context.Context, []byte, string) (string, bool) {
	return "", false
}

func newTestService(t *testing.T, gw ai.Gateway) (*Service, string) {
	t.Helper()
	sessions := session.NewService(session.NewMemoryStore(), session.Defaults{Language: models.LanguageDE, Location: "Darmstadt, Hessen"}, nil)
	st, err := sessions.Create(context.Background())
	require.NoError(t, err)

	svc := NewService(gw, sessions, nil, nil)
	svc.Now = func() time.Time { return time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc, st.ID
}

func TestSearchMovesSessionToDiscovery(t *testing.T) {
	munich := "Munich"
	gw := &stubGateway{classification: ai.Classification{Category: models.CategoryDining, Location: &munich}}
	svc, id := newTestService(t, gw)

	resp, err := svc.Search(context.Background(), id, "best restaurants in Munich")
	require.NoError(t, err)

	assert.Equal(t, models.CategoryDining, resp.Category)
	assert.Equal(t, "Munich", resp.Location)
	assert.True(t, resp.LocationChanged)
	assert.Equal(t, "/discovery/Dining", resp.Path)

	st, _ := svc.Sessions.Get(context.Background(), id)
	assert.Equal(t, "Munich", st.Location)
	assert.Equal(t, "/discovery/Dining", st.Path)
}

func TestDiscoverParsesResponse(t *testing.T) {
	gw := &stubGateway{events: ai.EventsResult{
		Text:      "Visit Berlin this weekend!\n| Title | Date | Desc |\n| --- | --- | --- |\n| **Jazz Night** | 2025-05-01 | Live music |\n",
		Sources:   []models.GroundingSource{{Title: "Jazz", URI: "https://jazz.example"}},
		Grounding: ai.GroundingSearch,
	}}
	svc, id := newTestService(t, gw)

	view, accepted, err := svc.Discover(context.Background(), id, models.CategoryFestivent)
	require.NoError(t, err)

	assert.True(t, accepted)
	assert.Equal(t, "Visit Berlin this weekend!", view.Intro)
	require.Len(t, view.Events, 1)
	assert.Equal(t, "Jazz Night", view.Events[0].Title)
	require.Len(t, view.Sources, 1)
	assert.Equal(t, "https://jazz.example", view.Sources[0].URI)
	assert.Equal(t, "search", view.Grounding)
	assert.Equal(t, models.CategoryFestivent.Theme(), view.Theme)

	current, err := svc.Current(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, view.Token, current.Token)
}

func TestDiscoverLastInitiatedWins(t *testing.T) {
	slow := make(chan struct{})
	gw := &stubGateway{
		events:  ai.EventsResult{Text: "Events in"},
		release: map[string]chan struct{}{"Berlin": slow},
		fetched: make(chan string, 2),
	}
	svc, id := newTestService(t, gw)
	ctx := context.Background()

	_, err := svc.Sessions.Update(ctx, id, func(st *session.State) error {
		st.SetLocation("Berlin")
		return nil
	})
	require.NoError(t, err)

	type outcome struct {
		view     models.DiscoveryView
		accepted bool
	}
	first := make(chan outcome, 1)
	go func() {
		v, ok, err := svc.Discover(ctx, id, models.CategorySports)
		assert.NoError(t, err)
		first <- outcome{v, ok}
	}()
	require.Equal(t, "Berlin", <-gw.fetched)

	_, err = svc.Sessions.Update(ctx, id, func(st *session.State) error {
		st.SetLocation("Hamburg")
		return nil
	})
	require.NoError(t, err)

	second, accepted, err := svc.Discover(ctx, id, models.CategorySports)
	require.NoError(t, err)
	assert.True(t, accepted)
	<-gw.fetched

	close(slow)
	late := <-first
	assert.False(t, late.accepted)

	current, err := svc.Current(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, second.Token, current.Token)
	assert.Equal(t, "Hamburg", current.Location)
}

func TestBookFromDiscovery(t *testing.T) {
	gw := &stubGateway{events: ai.EventsResult{Text: "## **Top Events**\nLots of things to do."}}
	svc, id := newTestService(t, gw)
	ctx := context.Background()

	_, _, err := svc.Book(ctx, id, BookingRequest{})
	assert.ErrorIs(t, err, booking.ErrLoginRequired)

	_, err = svc.Sessions.Update(ctx, id, func(st *session.State) error {
		st.SetUser(models.User{ID: "EK-98231", Name: "Gast"})
		return nil
	})
	require.NoError(t, err)

	_, _, err = svc.Book(ctx, id, BookingRequest{})
	assert.ErrorIs(t, err, ErrNoDiscovery)

	_, _, err = svc.Discover(ctx, id, models.CategoryCareer)
	require.NoError(t, err)

	ev, added, err := svc.Book(ctx, id, BookingRequest{})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Top Events", ev.Title)
	assert.Equal(t, "1.5.2025", ev.Date)
	assert.Equal(t, models.CategoryCareer, ev.Category)
	assert.Equal(t, "Darmstadt, Hessen", ev.Location)
	assert.True(t, len(ev.Description) > 3 && ev.Description[len(ev.Description)-3:] == "...")

	_, added, err = svc.Book(ctx, id, BookingRequest{})
	require.NoError(t, err)
	assert.False(t, added)

	st, _ := svc.Sessions.Get(ctx, id)
	assert.Equal(t, 1, st.Bookings.Len())
}

func TestBookExplicitRow(t *testing.T) {
	svc, id := newTestService(t, &stubGateway{})
	ctx := context.Background()
	_, err := svc.Sessions.Update(ctx, id, func(st *session.State) error {
		st.SetUser(models.User{ID: "EK-1"})
		st.Language = models.LanguageEN
		return nil
	})
	require.NoError(t, err)

	ev, added, err := svc.Book(ctx, id, BookingRequest{Title: "Jazz Night", Date: "2025-05-01", Category: "festivent", Location: "Berlin"})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, models.CategoryFestivent, ev.Category)
	assert.Contains(t, ev.ID, "event-Festivent-berlin-jazz-night-")

	removed, err := svc.Cancel(ctx, id, ev.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Cancel(ctx, id, ev.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFormatToday(t *testing.T) {
	day := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "24.12.2025", formatToday(day, models.LanguageDE))
	assert.Equal(t, "12/24/2025", formatToday(day, models.LanguageEN))
}
