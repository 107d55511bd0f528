package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZaguanLabs/golingo"
	"github.com/ZaguanLabs/golingo/payload"
)

// MockProvider is a mock translation backend for testing.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Err          error             // Returned from every call when set

	mu          sync.Mutex
	callCount   int
	lastRequest *ChunkRequest
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":                "Hola",
			"World":                "Mundo",
			"Hello World":          "Hola Mundo",
			"Welcome to our site.": "Bienvenido a nuestro sitio.",
		},
	}
}

// TranslateChunk returns mock translations for every value of the chunk.
func (m *MockProvider) TranslateChunk(ctx context.Context, req ChunkRequest) (*payload.Payload, error) {
	m.mu.Lock()
	m.callCount++
	m.lastRequest = &req
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &golingo.CancelledError{Cause: err}
	}
	if m.Err != nil {
		return nil, m.Err
	}

	out := payload.New(req.Data.Len())
	req.Data.Each(func(key, text string) {
		if translation, ok := m.Translations[text]; ok {
			out.Set(key, translation)
			return
		}
		// Return bracketed text for unknown translations
		out.Set(key, fmt.Sprintf("[%s]", text))
	})
	return out, nil
}

// CallCount returns the number of TranslateChunk calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *ChunkRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

// Verify MockProvider implements ChunkTranslator
var _ ChunkTranslator = (*MockProvider)(nil)
