package gemini

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/llm"
)

// Client implements llm.Client for one Gemini model.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini-backed client for the given model name.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model name is required")
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: gc, model: model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate submits the prompt plus inline parts and returns the raw text.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr[float32](0),
	}

	parts := make([]genai.Part, 0, len(req.Parts)+1)
	parts = append(parts, genai.Text(req.Prompt))
	for _, p := range req.Parts {
		parts = append(parts, genai.Blob{MIMEType: p.MimeType, Data: p.Data})
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", classifyError(err)
	}

	text := textFromResponse(resp)
	if text == "" {
		return "", fmt.Errorf("gemini %s: empty response", c.model)
	}
	return text, nil
}

// classifyError maps rate-limit and server overload responses to
// llm.RetryableError, carrying any retry hint found in the error body.
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return &llm.RetryableError{Status: 429, RetryAfter: retryHint(apiErr), Err: err}
		case apiErr.Code >= 500 && apiErr.Code <= 504:
			return &llm.RetryableError{Status: apiErr.Code, Err: err}
		default:
			return err
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "overloaded") {
		return &llm.RetryableError{Status: 429, Err: err}
	}
	return err
}

var retryHintPattern = regexp.MustCompile(`retry in ([0-9.]+)s`)

// retryHint pulls a "Please retry in Ns" style delay out of the API error.
func retryHint(apiErr *googleapi.Error) time.Duration {
	match := retryHintPattern.FindStringSubmatch(strings.ToLower(apiErr.Message))
	if len(match) != 2 {
		return 0
	}
	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
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
	return strings.TrimSpace(b.String())
}

var _ llm.Client = (*Client)(nil)
