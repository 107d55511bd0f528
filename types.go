package golingo

import (
	"context"

	"github.com/ZaguanLabs/golingo/payload"
)

// LocalizationParams describes one localization call.
type LocalizationParams struct {
	SourceLocale LocaleCode // Empty requests auto-detection
	TargetLocale LocaleCode // Required
	Fast         bool       // Trade quality for latency on the server

	// Reference holds existing translations, keyed by locale, that the
	// server may use for consistency.
	Reference map[LocaleCode]map[string]any

	// Hints maps payload keys to context strings.
	Hints map[string][]string
}

func (p LocalizationParams) validate() error {
	if p.TargetLocale == "" {
		return &ValidationError{Field: "TargetLocale", Message: "target locale is required"}
	}
	return nil
}

// BatchLocalizeTextParams describes a fan-out of one text to many locales.
type BatchLocalizeTextParams struct {
	SourceLocale  LocaleCode
	TargetLocales []LocaleCode
	Fast          bool
}

// ChatMessage is one turn of a chat transcript.
type ChatMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Identity is the account behind the configured API key.
type Identity struct {
	Email string `json:"email"`
	ID    string `json:"id"`
}

// ProgressFunc is called after each chunk with the rounded completion
// percentage, the chunk that was sent and the chunk that came back.
type ProgressFunc func(percent int, source, processed *payload.Payload)

// SimpleProgressFunc receives only the completion percentage.
type SimpleProgressFunc func(percent int)

func (f SimpleProgressFunc) full() ProgressFunc {
	if f == nil {
		return nil
	}
	return func(percent int, _, _ *payload.Payload) {
		f(percent)
	}
}

// ChunkRequest is one chunk of a localization call.
type ChunkRequest struct {
	SourceLocale LocaleCode
	TargetLocale LocaleCode
	WorkflowID   string
	Fast         bool
	Data         *payload.Payload
	Reference    map[LocaleCode]map[string]any
	Hints        map[string][]string
}

// ChunkTranslator sends one chunk to a translation backend and returns the
// translated flat payload. Implementations must abort when ctx is done.
type ChunkTranslator interface {
	TranslateChunk(ctx context.Context, req ChunkRequest) (*payload.Payload, error)
}
