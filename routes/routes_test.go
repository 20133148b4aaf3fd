package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventkompass/handlers"
	"eventkompass/middleware"
	"eventkompass/models"
	"eventkompass/services/auth"
	"eventkompass/services/discovery"
	ai "eventkompass/services/intelligence"
	"eventkompass/services/metrics"
	"eventkompass/services/pages"
	"eventkompass/services/session"
)

const eventsText = "Hier sind die Highlights:\n\n| Titel | Datum | Beschreibung |\n|---|---|---|\n| **Jazz Night** | 12.05.2026 | Live im Centralstation |\n"

type stubGateway struct {
	classification ai.Classification
	transcript     string
}

func (s *stubGateway) FetchEvents(_ context.Context, _ models.Category, _ string, _ models.Language) ai.EventsResult {
	return ai.EventsResult{
		Text:      eventsText,
		Sources:   []models.GroundingSource{{Title: "Centralstation", URI: "https://centralstation.de"}},
		Grounding: ai.GroundingSearch,
	}
}

func (s *stubGateway) ClassifyQuery(context.Context, string) ai.Classification {
	return s.classification
}

func (s *stubGateway) Transcribe(context.Context, []byte, string) (string, bool) {
	return s.transcript, s.transcript != ""
}

// client keeps the session token between requests like a browser tab.
type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return c.send(req)
}

func (c *client) send(req *http.Request) *httptest.ResponseRecorder {
	if c.token != "" {
		req.Header.Set(middleware.SessionHeader, c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	if token := rec.Header().Get(middleware.SessionHeader); token != "" {
		c.token = token
	}
	return rec
}

func newTestRouter(t *testing.T, gw ai.Gateway) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handlers.RegisterValidators())

	sessions := session.NewService(session.NewMemoryStore(), session.Defaults{Language: models.LanguageDE, Location: "Darmstadt, Hessen"}, nil)
	m := metrics.NewService()
	disc := discovery.NewService(gw, sessions, m, nil)

	sessionHandler := handlers.NewSessionHandler(sessions)
	discoveryHandler := handlers.NewDiscoveryHandler(disc)
	authHandler := handlers.NewAuthHandler(auth.NewMockAuthService(0, nil), sessions)
	bookingHandler := handlers.NewBookingHandler(disc)
	pagesHandler := handlers.NewPagesHandler(pages.NewGrievanceService(nil), sessions)

	hb := &handlers.HandlerBundle{
		Sessions:                sessions,
		HealthHandler:           handlers.HealthHandler,
		MetricsHandler:          handlers.MetricsHandler(m),
		GetSessionHandler:       sessionHandler.GetSessionHandler,
		SetLanguageHandler:      sessionHandler.SetLanguageHandler,
		ToggleLanguageHandler:   sessionHandler.ToggleLanguageHandler,
		SetLocationHandler:      sessionHandler.SetLocationHandler,
		NavigateHandler:         sessionHandler.NavigateHandler,
		CategoriesHandler:       discoveryHandler.CategoriesHandler,
		SearchHandler:           discoveryHandler.SearchHandler,
		DiscoverHandler:         discoveryHandler.DiscoverHandler,
		CurrentDiscoveryHandler: discoveryHandler.CurrentDiscoveryHandler,
		AISTTHandler:            handlers.NewSTTHandler(gw).AISTTHandler,
		LoginHandler:            authHandler.LoginHandler,
		RegisterHandler:         authHandler.RegisterHandler,
		LogoutHandler:           authHandler.LogoutHandler,
		ProfileHandler:          bookingHandler.ProfileHandler,
		ListBookingsHandler:     bookingHandler.ListBookingsHandler,
		AddBookingHandler:       bookingHandler.AddBookingHandler,
		DeleteBookingHandler:    bookingHandler.DeleteBookingHandler,
		CalendarHandler:         bookingHandler.CalendarHandler,
		ShareHandler:            bookingHandler.ShareHandler,
		TranslationsHandler:     handlers.TranslationsHandler,
		PageHandler:             pagesHandler.PageHandler,
		GrievanceHandler:        pagesHandler.GrievanceHandler,
	}

	router := gin.New()
	router.Use(middleware.Metrics(m))
	RegisterRoutes(router, hb, time.Hour)
	return &client{t: t, router: router}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestSessionDefaultsAndLanguage(t *testing.T) {
	c := newTestRouter(t, &stubGateway{})

	rec := c.do(http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[handlers.SessionView](t, rec)
	assert.Equal(t, models.LanguageDE, view.Language)
	assert.Equal(t, "Darmstadt, Hessen", view.Location)
	assert.Equal(t, "/", view.Path)
	assert.False(t, view.SignedIn)
	first := view.ID

	rec = c.do(http.MethodPut, "/api/session/language", map[string]string{"language": "fr"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/session/language/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[handlers.SessionView](t, rec)
	assert.Equal(t, models.LanguageEN, view.Language)
	assert.Equal(t, first, view.ID)

	rec = c.do(http.MethodPut, "/api/session/location", map[string]string{"location": "   "})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Darmstadt, Hessen", decode[handlers.SessionView](t, rec).Location)

	rec = c.do(http.MethodPut, "/api/session/location", map[string]string{"location": " Köln "})
	assert.Equal(t, "Köln", decode[handlers.SessionView](t, rec).Location)
}

func TestNavigateFallsBackHome(t *testing.T) {
	c := newTestRouter(t, &stubGateway{})

	for path, want := range map[string]string{
		"/about":              "/about",
		"/discovery/Sports":   "/discovery/Sports",
		"/discovery/Knitting": "/",
		"/profile":            "/",
		"/nowhere":            "/",
	} {
		rec := c.do(http.MethodPost, "/api/session/navigate", map[string]string{"path": path})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, decode[handlers.SessionView](t, rec).View.Path, path)
	}
}

func TestSearchDiscoverAndBook(t *testing.T) {
	berlin := "Berlin"
	c := newTestRouter(t, &stubGateway{classification: ai.Classification{Category: models.CategoryFestivent, Location: &berlin}})

	rec := c.do(http.MethodPost, "/api/search", map[string]string{"query": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/search", map[string]string{"query": "Konzerte in Berlin"})
	require.Equal(t, http.StatusOK, rec.Code)
	search := decode[models.SearchResponse](t, rec)
	assert.Equal(t, "/discovery/Festivent", search.Path)
	assert.Equal(t, "Berlin", search.Location)
	assert.True(t, search.LocationChanged)

	rec = c.do(http.MethodGet, "/api/discovery/current", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/discovery/Knitting", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/discovery/Festivent", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	disc := decode[handlers.DiscoveryResponse](t, rec)
	assert.True(t, disc.Accepted)
	assert.Equal(t, "Berlin", disc.Location)
	assert.Equal(t, "Hier sind die Highlights:", disc.Intro)
	require.Len(t, disc.Events, 1)
	assert.Equal(t, "Jazz Night", disc.Events[0].Title)
	require.Len(t, disc.Sources, 1)

	rec = c.do(http.MethodGet, "/api/discovery/current", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Booking needs a user.
	rec = c.do(http.MethodPost, "/api/bookings", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bitte melde dich an")

	rec = c.do(http.MethodPost, "/api/auth/login", map[string]string{"identifier": "EK-55555", "name": "Mia"})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[handlers.SessionView](t, rec)
	require.NotNil(t, view.User)
	assert.Equal(t, "EK-55555", view.User.ID)

	rec = c.do(http.MethodPost, "/api/bookings", map[string]string{})
	require.Equal(t, http.StatusCreated, rec.Code)
	booked := decode[handlers.BookingResponse](t, rec)
	assert.True(t, booked.Added)
	assert.Equal(t, "Hier sind die Highlights:", booked.Event.Title)

	rec = c.do(http.MethodPost, "/api/bookings", map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[handlers.BookingResponse](t, rec).Added)

	rec = c.do(http.MethodPost, "/api/bookings", map[string]string{"title": "Jazz Night", "date": "12.05.2026", "category": "Festivent"})
	require.Equal(t, http.StatusCreated, rec.Code)
	jazz := decode[handlers.BookingResponse](t, rec).Event

	rec = c.do(http.MethodPost, "/api/bookings", map[string]string{"title": "X", "category": "Knitting"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[handlers.ProfileResponse](t, rec)
	require.Len(t, profile.Bookings, 2)
	assert.Equal(t, jazz.ID, profile.Bookings[0].ID)

	rec = c.do(http.MethodGet, "/api/bookings/calendar.ics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rec.Body.String(), "Jazz Night")

	rec = c.do(http.MethodDelete, "/api/bookings/"+jazz.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.EventItem](t, c.do(http.MethodGet, "/api/bookings", nil)), 1)

	// Logout clears user and bookings together.
	rec = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[handlers.SessionView](t, rec).Bookings)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/profile", nil).Code)
	assert.Empty(t, decode[[]models.EventItem](t, c.do(http.MethodGet, "/api/bookings", nil)))
}

func TestRegisterThenLogin(t *testing.T) {
	c := newTestRouter(t, &stubGateway{})

	rec := c.do(http.MethodPost, "/api/auth/register", map[string]string{"name": "Mia", "email": "not-an-email", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/register", map[string]string{"name": "Mia", "email": "mia@example.de", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	reg := decode[auth.Registration](t, rec)
	assert.True(t, strings.HasPrefix(reg.ID, "EK-"))

	rec = c.do(http.MethodPost, "/api/auth/login", map[string]string{"identifier": reg.ID, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/login", map[string]string{"identifier": reg.ID, "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mia@example.de", decode[handlers.SessionView](t, rec).User.Email)
}

func TestContentEndpoints(t *testing.T) {
	c := newTestRouter(t, &stubGateway{})

	rec := c.do(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[[]handlers.CategoryInfo](t, rec)
	require.Len(t, cats, 4)
	assert.Equal(t, models.CategoryFestivent, cats[0].Category)
	assert.Equal(t, "/discovery/Festivent", cats[0].Path)

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/i18n/en", nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/i18n/fr", nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/pages/about", nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/pages/blog", nil).Code)

	rec = c.do(http.MethodGet, "/api/share?category=Sports&title=Derby&url=https://eventkompass.de/discovery/Sports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "whatsapp")
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/share", nil).Code)

	rec = c.do(http.MethodPost, "/api/grievances", map[string]string{"name": "Mia", "email": "mia@example.de", "subject": "refund", "message": "Hallo zusammen"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = c.do(http.MethodPost, "/api/grievances", map[string]string{"name": "Mia", "email": "mia@example.de", "subject": "technicalIssue", "message": "Die Seite lädt nicht."})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decode[pages.Receipt](t, rec).Message)

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/metrics", nil).Code)
}

func TestSpeechToText(t *testing.T) {
	c := newTestRouter(t, &stubGateway{transcript: "Konzerte in Hamburg"})

	// No file: the control stays idle.
	req := httptest.NewRequest(http.MethodPost, "/api/stt", nil)
	rec := c.send(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[models.TranscriptionResponse](t, rec).OK)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("audio", "recording.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-opus-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req = httptest.NewRequest(http.MethodPost, "/api/stt", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec = c.send(req)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[models.TranscriptionResponse](t, rec)
	assert.True(t, out.OK)
	assert.Equal(t, "Konzerte in Hamburg", out.Text)
}

func TestCancelBookingWithSlashInTitle(t *testing.T) {
	c := newTestRouter(t, &stubGateway{})

	rec := c.do(http.MethodPost, "/api/auth/login", map[string]string{"identifier": "EK-12345"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/api/bookings", map[string]string{"title": "Rock/Pop Festival", "date": "2026-07-01", "category": "Festivent"})
	require.Equal(t, http.StatusCreated, rec.Code)
	ev := decode[handlers.BookingResponse](t, rec).Event
	assert.Equal(t, "Darmstadt, Hessen", ev.Location)
	assert.NotContains(t, ev.ID, "/")
	assert.Equal(t, url.PathEscape(ev.ID), ev.ID)

	rec = c.do(http.MethodDelete, "/api/bookings/"+url.PathEscape(ev.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"removed":true`)
	assert.Empty(t, decode[[]models.EventItem](t, c.do(http.MethodGet, "/api/bookings", nil)))
}

func TestLoginAsAnotherUserDropsBookings(t *testing.T) {
	c := newTestRouter(t, &stubGateway{})

	rec := c.do(http.MethodPost, "/api/auth/login", map[string]string{"identifier": "EK-11111", "name": "Anna"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodPost, "/api/bookings", map[string]string{"title": "Stadtfest", "date": "2026-07-01", "category": "Festivent"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/login", map[string]string{"identifier": "EK-11111", "name": "Anna"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.EventItem](t, c.do(http.MethodGet, "/api/bookings", nil)), 1)

	rec = c.do(http.MethodPost, "/api/auth/login", map[string]string{"identifier": "EK-22222", "name": "Ben"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.EventItem](t, c.do(http.MethodGet, "/api/bookings", nil)))
}
