// Package ai is the only boundary to the generative models. Every operation is
// total: failures are logged and turned into sentinel values here so callers
// never branch on errors.
package ai

import (
	"context"

	"eventkompass/models"
)

// Grounding names the retrieval tool attached to an event fetch.
type Grounding string

const (
	GroundingSearch Grounding = "search"
	GroundingMaps   Grounding = "maps"
)

// Gateway is what the rest of the service sees of the AI backends.
type Gateway interface {
	FetchEvents(ctx context.Context, category models.Category, location string, lang models.Language) EventsResult
	ClassifyQuery(ctx context.Context, text string) Classification
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, bool)
}

// EventsResult is the normalized answer of an event fetch. On failure Text holds
// the localized error message, Sources is empty and Failed is set.
type EventsResult struct {
	Text      string
	Sources   []models.GroundingSource
	Grounding Grounding
	Failed    bool
}

// Classification is the outcome of ClassifyQuery. Category is always valid.
type Classification struct {
	Category models.Category
	Location *string
	Fallback bool
}

// LatLng is a retrieval hint for location-grounded requests.
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// GroundedRequest describes one retrieval-augmented generation call.
type GroundedRequest struct {
	Model     string
	Prompt    string
	Grounding Grounding
	LatLng    *LatLng
}

// GroundedResponse is the raw text and citations of a grounded call.
type GroundedResponse struct {
	Text    string
	Sources []models.GroundingSource
}

// GroundedGenerator runs retrieval-augmented generation.
type GroundedGenerator interface {
	GenerateGrounded(ctx context.Context, req GroundedRequest) (GroundedResponse, error)
}

// JSONGenerator answers a prompt with a JSON document matching the
// classification schema.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}
