package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const recognizePrompt = `Read every piece of text visible in this image.
Return JSON with a "blocks" array. Each block has "text" (the exact text of
one contiguous region, reading order top-to-bottom) and "confidence" (your
confidence in that region between 0 and 1). Do not translate or correct the
text.`

// GeminiEngine recognizes text with a Gemini vision model.
type GeminiEngine struct {
	client *genai.Client
	model  string
}

// NewGeminiEngine constructs an OCR engine backed by the given vision model.
func NewGeminiEngine(ctx context.Context, apiKey, model string) (*GeminiEngine, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("OCR_MODEL is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiEngine{client: client, model: model}, nil
}

// Recognize extracts text and confidence metrics from one image.
func (e *GeminiEngine) Recognize(ctx context.Context, data []byte, mimeType string) (Result, error) {
	prepared, preparedMime := Preprocess(data, mimeType)

	model := e.client.GenerativeModel(e.model)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
		ResponseSchema:   blockSchema(),
	}

	resp, err := model.GenerateContent(ctx,
		genai.Text(recognizePrompt),
		genai.Blob{MIMEType: preparedMime, Data: prepared},
	)
	if err != nil {
		return Result{}, fmt.Errorf("gemini ocr: %w", err)
	}

	raw := textFromResponse(resp)
	if raw == "" {
		return Result{}, fmt.Errorf("gemini ocr: empty response")
	}

	var parsed struct {
		Blocks []Block `json:"blocks"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Result{}, fmt.Errorf("gemini ocr: parse blocks: %w", err)
	}

	var lines []string
	for _, b := range parsed.Blocks {
		if trimmed := strings.TrimSpace(b.Text); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return Result{
		Text:    strings.Join(lines, "\n"),
		Metrics: ComputeMetrics(parsed.Blocks),
	}, nil
}

func blockSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"blocks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text":       {Type: genai.TypeString},
						"confidence": {Type: genai.TypeNumber},
					},
					Required: []string{"text", "confidence"},
				},
			},
		},
		Required: []string{"blocks"},
	}
}

func textFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
