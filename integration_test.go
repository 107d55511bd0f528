package golingo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ZaguanLabs/golingo"
	"github.com/ZaguanLabs/golingo/payload"
	"github.com/ZaguanLabs/golingo/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests wiring the engine to in-process backends

var params = golingo.LocalizationParams{SourceLocale: "en", TargetLocale: "es"}

func newMockEngine(t *testing.T, cfg golingo.EngineConfig, opts ...golingo.Option) (*golingo.Engine, *provider.MockProvider) {
	t.Helper()
	m := provider.NewMockProvider()
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	e, err := golingo.NewEngine(cfg, append([]golingo.Option{golingo.WithChunkTranslator(m)}, opts...)...)
	require.NoError(t, err)
	return e, m
}

func TestIntegration_HTMLPage(t *testing.T) {
	e, m := newMockEngine(t, golingo.EngineConfig{})

	page := `<!DOCTYPE html>
<html>
<head><title>Hello</title></head>
<body>
  <div>
    <p>Hello World</p>
    <p>  Welcome to our site.  </p>
    <img src="a.png" alt="World">
  </div>
  <style>p { color: red }</style>
</body>
</html>`

	out, err := e.LocalizeHTML(context.Background(), page, params, nil)
	require.NoError(t, err)

	assert.Contains(t, out, `<html lang="es">`)
	assert.Contains(t, out, "<title>Hola</title>")
	assert.Contains(t, out, "<p>Hola Mundo</p>")
	assert.Contains(t, out, "<p>  Bienvenido a nuestro sitio.  </p>")
	assert.Contains(t, out, `alt="Mundo"`)
	assert.Contains(t, out, "p { color: red }")
	assert.Equal(t, 1, m.CallCount())
}

func TestIntegration_HTMLRoundTrip(t *testing.T) {
	identity := identityTranslator{}
	e, err := golingo.NewEngine(golingo.EngineConfig{APIKey: "k", BatchSize: 2}, golingo.WithChunkTranslator(identity))
	require.NoError(t, err)

	page := `<!DOCTYPE html><html><head><title>T</title></head><body><ul><li>One</li><li>Two <b>three</b></li></ul><a href="#" title="x">y</a></body></html>`

	out, err := e.LocalizeHTML(context.Background(), page, params, nil)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(page, "<html>", `<html lang="es">`, 1), out)
}

func TestIntegration_ChunkedObjectWithRateLimit(t *testing.T) {
	e, m := newMockEngine(t, golingo.EngineConfig{BatchSize: 1},
		golingo.WithRateLimit(golingo.RateLimitConfig{RequestsPerMinute: 6000, BurstSize: 10}),
		golingo.WithRetry(golingo.RetryConfig{MaxRetries: 1, BaseDelay: time.Millisecond}),
	)

	obj := map[string]any{"a": "Hello", "b": "World", "c": 42}
	out, err := e.LocalizeObject(context.Background(), obj, params, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "Hola", "b": "Mundo", "c": 42}, out)
	assert.Equal(t, 2, m.CallCount())
	assert.Equal(t, golingo.LocaleCode("es"), m.LastRequest().TargetLocale)
}

func TestIntegration_Batch(t *testing.T) {
	e, m := newMockEngine(t, golingo.EngineConfig{})

	out, err := e.BatchLocalizeText(context.Background(), "Hello", golingo.BatchLocalizeTextParams{
		SourceLocale:  "en",
		TargetLocales: []golingo.LocaleCode{"es", "fr", "it"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hola", "Hola", "Hola"}, out)
	assert.Equal(t, 3, m.CallCount())
}

func TestIntegration_MockErrorPropagates(t *testing.T) {
	e, m := newMockEngine(t, golingo.EngineConfig{})
	m.Err = &golingo.RemoteRejectedError{Message: "nope"}

	_, err := e.LocalizeStringArray(context.Background(), []string{"Hello"}, params)
	var rejected *golingo.RemoteRejectedError
	assert.ErrorAs(t, err, &rejected)
}

// identityTranslator returns every chunk unchanged.
type identityTranslator struct{}

func (identityTranslator) TranslateChunk(_ context.Context, req golingo.ChunkRequest) (*payload.Payload, error) {
	return req.Data.Clone(), nil
}
