package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/llm"
)

const maxCompletionTokens = 4096

// Client implements llm.Client using OpenAI chat completions.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient constructs an OpenAI-backed client for the given model name.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model name is required")
	}
	return &Client{api: openai.NewClient(apiKey), model: model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate submits the prompt plus inline image parts and returns raw text.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	message := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(req.Parts) == 0 {
		message.Content = req.Prompt
	} else {
		message.MultiContent = multiContent(req)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  []openai.ChatCompletionMessage{message},
		MaxTokens: maxCompletionTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai %s: response missing choices", c.model)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai %s: empty response", c.model)
	}
	return content, nil
}

func multiContent(req llm.Request) []openai.ChatMessagePart {
	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
	}
	for _, p := range req.Parts {
		encoded := base64.StdEncoding.EncodeToString(p.Data)
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", p.MimeType, encoded),
			},
		})
	}
	return parts
}

// classifyError maps rate-limit and server errors to llm.RetryableError.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 429:
			return &llm.RetryableError{Status: 429, Err: err}
		case apiErr.HTTPStatusCode >= 500 && apiErr.HTTPStatusCode <= 504:
			return &llm.RetryableError{Status: apiErr.HTTPStatusCode, Err: err}
		}
	}
	return err
}

var _ llm.Client = (*Client)(nil)
