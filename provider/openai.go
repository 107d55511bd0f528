package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/ZaguanLabs/golingo"
	"github.com/ZaguanLabs/golingo/payload"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements ChunkTranslator using an OpenAI-compatible
// chat completion API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
	HTTPClient  *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		config.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// TranslateChunk translates the values of one chunk, keeping its keys.
func (p *OpenAIProvider) TranslateChunk(ctx context.Context, req ChunkRequest) (*payload.Payload, error) {
	if req.Data.Len() == 0 {
		return payload.New(0), nil
	}

	userMessage, err := p.buildUserMessage(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, classifyError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return nil, &golingo.RemoteRejectedError{Message: "no choices in completion"}
	}

	return parseResponse(resp.Choices[0].Message.Content)
}

func (p *OpenAIProvider) buildSystemPrompt(req ChunkRequest) string {
	sourceName := "the language it is written in"
	if req.SourceLocale != "" {
		sourceName = req.SourceLocale.Name()
	}
	targetName := req.TargetLocale.Name()

	prompt := fmt.Sprintf(`# Role
You are an expert native translator. You translate content from %s to %s with the fluency of a native speaker.

# Task
You receive a JSON object. Translate every value into idiomatic %s. Keep every key exactly as it is.

# Style Guide
- **Natural Flow**: Avoid literal translations.
- **HTML/Code Safety**: Do NOT translate HTML tags, attributes, URLs, email addresses, or content inside backticks.
- **Interpolation**: Do NOT translate variables or placeholders (e.g., {{name}}, {count}, %%s, $1).
- **Formatting**: Preserve leading and trailing whitespace.`, sourceName, targetName, targetName)

	if req.Fast {
		prompt += "\n- **Speed**: Prefer a direct translation over extended deliberation."
	}

	if len(req.Hints) > 0 {
		keys := make([]string, 0, len(req.Hints))
		for k := range req.Hints {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		prompt += "\n\n# Hints\nContext for individual keys:"
		for _, k := range keys {
			prompt += fmt.Sprintf("\n- %s: %s", k, strings.Join(req.Hints[k], "; "))
		}
	}

	if len(req.Reference) > 0 {
		if ref, err := json.Marshal(req.Reference); err == nil {
			prompt += "\n\n# Reference\nExisting translations by locale; stay consistent with them:\n" + string(ref)
		}
	}

	prompt += `

# Format
Return a valid JSON object with a single key "data" holding the translated object.
Example: { "data": { "key": "translated value" } }
- Do NOT wrap in Markdown code blocks.`

	return prompt
}

func (p *OpenAIProvider) buildUserMessage(req ChunkRequest) (string, error) {
	data, err := json.Marshal(req.Data)
	if err != nil {
		return "", fmt.Errorf("encoding chunk: %w", err)
	}
	return string(data), nil
}

// parseResponse accepts either {"data": {...}} or the translated object
// itself.
func parseResponse(content string) (*payload.Payload, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	raw := []byte(content)
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		raw = envelope.Data
	}

	out := payload.New(0)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, &golingo.RemoteRejectedError{Message: "invalid response format: " + err.Error()}
	}
	return out, nil
}

func classifyError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &golingo.CancelledError{Cause: ctxErr}
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		return fmt.Errorf("openai request: %w", err)
	}

	statusText := fmt.Sprintf("%d %s", status, http.StatusText(status))
	switch {
	case status >= 500 && status < 600:
		return &golingo.ServerError{StatusCode: status, Status: statusText, Body: err.Error()}
	case status == http.StatusBadRequest:
		return &golingo.InvalidRequestError{Status: statusText}
	default:
		return &golingo.UnknownHTTPError{StatusCode: status, Body: err.Error()}
	}
}

// Verify OpenAIProvider implements ChunkTranslator
var _ ChunkTranslator = (*OpenAIProvider)(nil)
