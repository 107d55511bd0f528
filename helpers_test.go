package golingo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ZaguanLabs/golingo/payload"
	"github.com/stretchr/testify/require"
)

// translatorFunc adapts a function to ChunkTranslator.
type translatorFunc func(ctx context.Context, req ChunkRequest) (*payload.Payload, error)

func (f translatorFunc) TranslateChunk(ctx context.Context, req ChunkRequest) (*payload.Payload, error) {
	return f(ctx, req)
}

// capturedRequest is one /i18n call seen by the stub API.
type capturedRequest struct {
	Header http.Header
	Raw    map[string]json.RawMessage
	Body   struct {
		Params struct {
			WorkflowID string `json:"workflowId"`
			Fast       bool   `json:"fast"`
		} `json:"params"`
		Locale struct {
			Source *string `json:"source"`
			Target string  `json:"target"`
		} `json:"locale"`
		Data      *payload.Payload          `json:"data"`
		Reference map[string]map[string]any `json:"reference"`
		Hints     map[string][]string       `json:"hints"`
	}
}

// stubAPI is an httptest stand-in for the remote engine.
type stubAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest

	// respond builds the reply; the default upper-cases every value sent to
	// /i18n.
	respond func(w http.ResponseWriter, path string, req capturedRequest)
}

func newStubAPI(t *testing.T) *stubAPI {
	t.Helper()
	s := &stubAPI{}
	s.respond = func(w http.ResponseWriter, path string, req capturedRequest) {
		if path != "/i18n" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		out := payload.New(req.Body.Data.Len())
		req.Body.Data.Each(func(k, v string) { out.Set(k, strings.ToUpper(v)) })
		writeJSON(w, map[string]any{"data": out})
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req capturedRequest
		req.Header = r.Header.Clone()
		raw := json.RawMessage{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
			_ = json.Unmarshal(raw, &req.Raw)
			_ = json.Unmarshal(raw, &req.Body)
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		respond := s.respond
		s.mu.Unlock()

		respond(w, r.URL.Path, req)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubAPI) setRespond(fn func(w http.ResponseWriter, path string, req capturedRequest)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respond = fn
}

func (s *stubAPI) calls() []capturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]capturedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *stubAPI) engine(t *testing.T, cfg EngineConfig, opts ...Option) *Engine {
	t.Helper()
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	cfg.APIURL = s.URL
	e, err := NewEngine(cfg, opts...)
	require.NoError(t, err)
	return e
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

var esParams = LocalizationParams{SourceLocale: "en", TargetLocale: "es"}
