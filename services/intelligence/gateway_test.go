package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventkompass/models"
)

type fakeGrounded struct {
	resp GroundedResponse
	err  error
	got  []GroundedRequest
}

func (f *fakeGrounded) GenerateGrounded(_ context.Context, req GroundedRequest) (GroundedResponse, error) {
	f.got = append(f.got, req)
	return f.resp, f.err
}

type fakeJSON struct {
	raw string
	err error
}

func (f *fakeJSON) GenerateJSON(context.Context, string) (string, error) {
	return f.raw, f.err
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return f.text, f.err
}

type panickyGrounded struct{}

func (panickyGrounded) GenerateGrounded(context.Context, GroundedRequest) (GroundedResponse, error) {
	panic("boom")
}

func newGateway(g GroundedGenerator, c JSONGenerator, tr Transcriber) *DefaultGateway {
	return &DefaultGateway{
		Grounded:    g,
		Classifier:  c,
		Transcriber: tr,
		SearchModel: "search-model",
		MapsModel:   "maps-model",
	}
}

func TestFetchEventsUsesSearchGrounding(t *testing.T) {
	fake := &fakeGrounded{resp: GroundedResponse{
		Text:    "Events in Berlin",
		Sources: []models.GroundingSource{{Title: "a", URI: "https://a"}, {Title: "no uri"}},
	}}
	gw := newGateway(fake, nil, nil)

	res := gw.FetchEvents(context.Background(), models.CategorySports, "Berlin", models.LanguageEN)

	require.Len(t, fake.got, 1)
	assert.Equal(t, "search-model", fake.got[0].Model)
	assert.Equal(t, GroundingSearch, fake.got[0].Grounding)
	assert.Nil(t, fake.got[0].LatLng)
	assert.Contains(t, fake.got[0].Prompt, "Sports events in or around Berlin")

	assert.False(t, res.Failed)
	assert.Equal(t, "Events in Berlin", res.Text)
	assert.Equal(t, []models.GroundingSource{{Title: "a", URI: "https://a"}}, res.Sources)
}

func TestFetchEventsDiningUsesMaps(t *testing.T) {
	fake := &fakeGrounded{resp: GroundedResponse{Text: "Restaurants"}}
	gw := newGateway(fake, nil, nil)

	res := gw.FetchEvents(context.Background(), models.CategoryDining, "Köln", models.LanguageDE)

	require.Len(t, fake.got, 1)
	assert.Equal(t, "maps-model", fake.got[0].Model)
	assert.Equal(t, GroundingMaps, fake.got[0].Grounding)
	require.NotNil(t, fake.got[0].LatLng)
	assert.Equal(t, 51.1657, fake.got[0].LatLng.Latitude)
	assert.Equal(t, 10.4515, fake.got[0].LatLng.Longitude)
	assert.Contains(t, fake.got[0].Prompt, "Suche nach aktuellen Dining Events in oder um Köln")
	assert.Equal(t, GroundingMaps, res.Grounding)
}

func TestFetchEventsFailureIsAbsorbed(t *testing.T) {
	tests := []struct {
		name string
		gen  GroundedGenerator
		lang models.Language
		want string
	}{
		{"transport error de", &fakeGrounded{err: errors.New("network down")}, models.LanguageDE, "Fehler beim Laden der Events."},
		{"transport error en", &fakeGrounded{err: errors.New("network down")}, models.LanguageEN, "Error loading events."},
		{"empty text", &fakeGrounded{resp: GroundedResponse{Text: "  "}}, models.LanguageEN, "Error loading events."},
		{"panic", panickyGrounded{}, models.LanguageEN, "Error loading events."},
		{"not configured", nil, models.LanguageDE, "Fehler beim Laden der Events."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newGateway(tt.gen, nil, nil)
			res := gw.FetchEvents(context.Background(), models.CategoryFestivent, "Berlin", tt.lang)

			assert.True(t, res.Failed)
			assert.Equal(t, tt.want, res.Text)
			assert.NotNil(t, res.Sources)
			assert.Empty(t, res.Sources)
		})
	}
}

func TestClassifyQuery(t *testing.T) {
	munich := "Munich"
	tests := []struct {
		name         string
		backend      JSONGenerator
		wantCategory models.Category
		wantLocation *string
		wantFallback bool
	}{
		{"valid", &fakeJSON{raw: `{"category":"Dining","location":"Munich"}`}, models.CategoryDining, &munich, false},
		{"fenced", &fakeJSON{raw: "```json\n{\"category\":\"Career\",\"location\":null}\n```"}, models.CategoryCareer, nil, false},
		{"lowercase category", &fakeJSON{raw: `{"category":"sports","location":""}`}, models.CategorySports, nil, false},
		{"unknown category", &fakeJSON{raw: `{"category":"NotARealCategory","location":"Munich"}`}, models.CategoryFestivent, &munich, true},
		{"invalid json", &fakeJSON{raw: `category: Dining`}, models.CategoryFestivent, nil, true},
		{"request error", &fakeJSON{err: errors.New("quota")}, models.CategoryFestivent, nil, true},
		{"no backend", nil, models.CategoryFestivent, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newGateway(nil, tt.backend, nil)
			res := gw.ClassifyQuery(context.Background(), "best restaurants in Munich")

			assert.Equal(t, tt.wantCategory, res.Category)
			assert.Equal(t, tt.wantLocation, res.Location)
			assert.Equal(t, tt.wantFallback, res.Fallback)
		})
	}
}

func TestTranscribe(t *testing.T) {
	gw := newGateway(nil, nil, &fakeTranscriber{text: " Jazz in Berlin \n"})
	text, ok := gw.Transcribe(context.Background(), []byte{1, 2, 3}, "audio/webm")
	assert.True(t, ok)
	assert.Equal(t, "Jazz in Berlin", text)

	gw = newGateway(nil, nil, &fakeTranscriber{err: errors.New("bad audio")})
	text, ok = gw.Transcribe(context.Background(), []byte{1}, "audio/webm")
	assert.False(t, ok)
	assert.Empty(t, text)

	gw = newGateway(nil, nil, &fakeTranscriber{text: "   "})
	_, ok = gw.Transcribe(context.Background(), []byte{1}, "audio/webm")
	assert.False(t, ok)

	_, ok = gw.Transcribe(context.Background(), nil, "audio/webm")
	assert.False(t, ok)
}
