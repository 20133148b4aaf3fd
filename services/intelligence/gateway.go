package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"eventkompass/models"
	"eventkompass/services/metrics"
)

// diningCentroid is the geographic centre of Germany, sent as retrieval hint
// with every maps-grounded request.
var diningCentroid = LatLng{Latitude: 51.1657, Longitude: 10.4515}

var errEmptyResponse = errors.New("empty model response")

// DefaultGateway implements Gateway on top of pluggable backends.
type DefaultGateway struct {
	Grounded    GroundedGenerator
	Classifier  JSONGenerator
	Transcriber Transcriber

	SearchModel string
	MapsModel   string

	Metrics *metrics.Service
	Logger  *zap.Logger
}

func (g *DefaultGateway) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// FetchEvents asks for current events of category around location. Dining is
// grounded on maps around the centre of Germany, every other category on web
// search.
func (g *DefaultGateway) FetchEvents(ctx context.Context, category models.Category, location string, lang models.Language) EventsResult {
	start := time.Now()
	req := GroundedRequest{
		Model:     g.SearchModel,
		Prompt:    eventsPrompt(category, location, lang),
		Grounding: GroundingSearch,
	}
	if category == models.CategoryDining {
		hint := diningCentroid
		req.Model = g.MapsModel
		req.Grounding = GroundingMaps
		req.LatLng = &hint
	}

	resp, err := g.fetch(ctx, req)
	if err != nil {
		g.logger().Error("FetchEvents failed",
			zap.String("category", string(category)),
			zap.String("location", location),
			zap.String("grounding", string(req.Grounding)),
			zap.Error(err))
		g.Metrics.ObserveAICall("fetch_events", "fallback", time.Since(start))
		return EventsResult{
			Text:      errorText(lang),
			Sources:   []models.GroundingSource{},
			Grounding: req.Grounding,
			Failed:    true,
		}
	}

	g.Metrics.ObserveAICall("fetch_events", "ok", time.Since(start))
	return EventsResult{Text: resp.Text, Sources: resp.Sources, Grounding: req.Grounding}
}

func (g *DefaultGateway) fetch(ctx context.Context, req GroundedRequest) (resp GroundedResponse, err error) {
	if g.Grounded == nil {
		return resp, errors.New("grounded generator not configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("grounded generator panicked")
		}
	}()

	resp, err = g.Grounded.GenerateGrounded(ctx, req)
	if err != nil {
		return resp, err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return resp, errEmptyResponse
	}
	sources := make([]models.GroundingSource, 0, len(resp.Sources))
	for _, s := range resp.Sources {
		if s.URI != "" {
			sources = append(sources, s)
		}
	}
	resp.Sources = sources
	return resp, nil
}

// ClassifyQuery maps free text to a category and an optional location. Any
// failure yields the default category without location.
func (g *DefaultGateway) ClassifyQuery(ctx context.Context, text string) Classification {
	start := time.Now()
	fallback := Classification{Category: models.DefaultCategory, Fallback: true}

	if g.Classifier == nil {
		g.Metrics.ObserveAICall("classify", "fallback", time.Since(start))
		return fallback
	}

	raw, err := g.Classifier.GenerateJSON(ctx, classifyPrompt(text))
	if err != nil {
		g.logger().Warn("ClassifyQuery request failed", zap.Error(err))
		g.Metrics.ObserveAICall("classify", "fallback", time.Since(start))
		return fallback
	}

	var out models.ClassifierOutput
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		g.logger().Warn("ClassifyQuery returned invalid JSON", zap.String("raw", raw), zap.Error(err))
		g.Metrics.ObserveAICall("classify", "fallback", time.Since(start))
		return fallback
	}

	res := Classification{Category: models.DefaultCategory}
	if c, ok := models.LookupCategory(out.Category); ok {
		res.Category = c
	} else {
		g.logger().Info("ClassifyQuery returned unknown category", zap.String("category", out.Category))
		res.Fallback = true
	}
	if out.Location != nil {
		if loc := strings.TrimSpace(*out.Location); loc != "" && !strings.EqualFold(loc, "null") {
			res.Location = &loc
		}
	}

	outcome := "ok"
	if res.Fallback {
		outcome = "fallback"
	}
	g.Metrics.ObserveAICall("classify", outcome, time.Since(start))
	return res
}

// Transcribe returns the transcript of audio, or false when nothing usable
// came back.
func (g *DefaultGateway) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, bool) {
	start := time.Now()
	if g.Transcriber == nil || len(audio) == 0 {
		g.Metrics.ObserveAICall("transcribe", "fallback", time.Since(start))
		return "", false
	}

	text, err := g.Transcriber.Transcribe(ctx, audio, mimeType)
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		g.logger().Warn("Transcribe failed", zap.String("mimeType", mimeType), zap.Int("bytes", len(audio)), zap.Error(err))
		g.Metrics.ObserveAICall("transcribe", "fallback", time.Since(start))
		return "", false
	}

	g.Metrics.ObserveAICall("transcribe", "ok", time.Since(start))
	return text, true
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
