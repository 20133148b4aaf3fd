package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"eventkompass/models"
)

// GeminiClient serves classification and audio transcription. The
// classification model is pinned to a JSON response schema.
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	jsonModel := client.GenerativeModel(modelName)
	jsonModel.ResponseMIMEType = "application/json"
	jsonModel.ResponseSchema = classificationSchema()

	return &GeminiClient{
		client:    client,
		model:     client.GenerativeModel(modelName),
		jsonModel: jsonModel,
	}, nil
}

func classificationSchema() *genai.Schema {
	enum := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		enum = append(enum, string(c))
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {
				Type:        genai.TypeString,
				Enum:        enum,
				Description: "Event category of the query",
			},
			"location": {
				Type:        genai.TypeString,
				Nullable:    true,
				Description: "City or region named in the query, null when none",
			},
		},
		Required: []string{"category", "location"},
	}
}

func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.jsonModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini classify error: %w", err)
	}
	return responseText(resp)
}

// Transcribe sends the audio inline together with the transcription instruction.
func (g *GeminiClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	resp, err := g.model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: audio},
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe error: %w", err)
	}
	return responseText(resp)
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
