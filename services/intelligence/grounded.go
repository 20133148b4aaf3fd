package ai

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"eventkompass/models"
)

// GroundedClient runs search- and maps-grounded generation.
type GroundedClient struct {
	client     *genai.Client
	httpClient *http.Client
}

func NewGroundedClient(ctx context.Context, apiKey string) (*GroundedClient, error) {
	httpClient := &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create grounded client: %w", err)
	}
	return &GroundedClient{client: client, httpClient: httpClient}, nil
}

// Close releases the pooled connections. genai.Client itself holds nothing else.
func (g *GroundedClient) Close() error {
	g.httpClient.CloseIdleConnections()
	return nil
}

func (g *GroundedClient) GenerateGrounded(ctx context.Context, req GroundedRequest) (GroundedResponse, error) {
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), groundingConfig(req))
	if err != nil {
		return GroundedResponse{}, fmt.Errorf("grounded generate error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return GroundedResponse{}, errEmptyResponse
	}
	return GroundedResponse{
		Text:    resp.Text(),
		Sources: groundingSources(resp.Candidates[0].GroundingMetadata),
	}, nil
}

func groundingConfig(req GroundedRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.Grounding == GroundingMaps {
		cfg.Tools = []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}}
	} else {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.LatLng != nil {
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(req.LatLng.Latitude),
					Longitude: genai.Ptr(req.LatLng.Longitude),
				},
			},
		}
	}
	return cfg
}

// groundingSources keeps maps and web chunks; other chunk kinds are dropped.
func groundingSources(meta *genai.GroundingMetadata) []models.GroundingSource {
	sources := []models.GroundingSource{}
	if meta == nil {
		return sources
	}
	for _, chunk := range meta.GroundingChunks {
		switch {
		case chunk == nil:
		case chunk.Maps != nil:
			sources = append(sources, models.GroundingSource{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
		case chunk.Web != nil:
			sources = append(sources, models.GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return sources
}
