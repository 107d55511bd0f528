package golingo

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/golingo/htmlcodec"
	"github.com/ZaguanLabs/golingo/payload"
)

const (
	// DefaultAPIURL is the production localization endpoint.
	DefaultAPIURL = "https://engine.lingo.dev"
	// DefaultBatchSize is the maximum number of entries per chunk.
	DefaultBatchSize = 25
	// DefaultIdealBatchItemSize is the word budget per chunk.
	DefaultIdealBatchItemSize = 250
)

// EngineConfig holds the immutable engine configuration.
type EngineConfig struct {
	APIKey             string `env:"LINGODOTDEV_API_KEY"`
	APIURL             string `env:"LINGODOTDEV_API_URL" envDefault:"https://engine.lingo.dev"`
	BatchSize          int    `env:"LINGODOTDEV_BATCH_SIZE" envDefault:"25"`
	IdealBatchItemSize int    `env:"LINGODOTDEV_IDEAL_BATCH_ITEM_SIZE" envDefault:"250"`
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.IdealBatchItemSize == 0 {
		c.IdealBatchItemSize = DefaultIdealBatchItemSize
	}
	return c
}

func (c EngineConfig) validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &ValidationError{Field: "APIKey", Message: "API key is required"}
	}
	if c.BatchSize < 1 {
		return &ValidationError{Field: "BatchSize", Message: "must be at least 1"}
	}
	if c.IdealBatchItemSize < 1 {
		return &ValidationError{Field: "IdealBatchItemSize", Message: "must be at least 1"}
	}
	return nil
}

// Engine localizes content through the remote localization API. It is safe
// for concurrent use; nothing is shared between calls except the
// configuration.
type Engine struct {
	config     EngineConfig
	httpClient *http.Client
	logger     *slog.Logger
	client     *apiClient
	translator ChunkTranslator
	codec      htmlcodec.Codec
	retry      *RetryConfig
	rateLimit  *RateLimitConfig
}

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) {
		e.httpClient = c
	}
}

// WithLogger sets the structured logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithChunkTranslator replaces the HTTP backend used for chunk requests.
// Locale recognition and identity lookup still use the HTTP API.
func WithChunkTranslator(t ChunkTranslator) Option {
	return func(e *Engine) {
		e.translator = t
	}
}

// WithHTMLCodec sets the codec used by LocalizeHTML.
func WithHTMLCodec(c htmlcodec.Codec) Option {
	return func(e *Engine) {
		e.codec = c
	}
}

// WithRetry retries chunk requests that fail with a ServerError.
// The engine never retries unless this option is given.
func WithRetry(cfg RetryConfig) Option {
	return func(e *Engine) {
		e.retry = &cfg
	}
}

// WithRateLimit limits the rate of chunk requests.
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(e *Engine) {
		e.rateLimit = &cfg
	}
}

// NewEngine creates an Engine. Zero config fields take their defaults; a
// missing API key is a ValidationError.
func NewEngine(cfg EngineConfig, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config: cfg,
		codec:  htmlcodec.NewStructuralCodec(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.httpClient == nil {
		e.httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}

	e.client = &apiClient{
		baseURL:    cfg.APIURL,
		apiKey:     cfg.APIKey,
		httpClient: e.httpClient,
		logger:     e.logger,
	}
	if e.translator == nil {
		e.translator = e.client
	}
	if e.rateLimit != nil {
		e.translator = NewRateLimitedTranslator(e.translator, *e.rateLimit)
	}
	if e.retry != nil {
		e.translator = NewRetryingTranslator(e.translator, *e.retry)
	}

	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// runLocalization chunks flat, sends the chunks one after another and
// merges the results. The first failure aborts the call.
func (e *Engine) runLocalization(ctx context.Context, flat *payload.Payload, params LocalizationParams, progress ProgressFunc) (*payload.Payload, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	workflowID := newWorkflowID()
	chunks := payload.Split(flat, e.config.BatchSize, e.config.IdealBatchItemSize)
	result := payload.New(flat.Len())

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, &CancelledError{Cause: err}
		}

		e.logger.DebugContext(ctx, "localizing chunk",
			slog.String("workflow_id", workflowID),
			slog.Int("chunk", i+1),
			slog.Int("total", len(chunks)),
			slog.Int("items", chunk.Len()),
		)

		processed, err := e.translator.TranslateChunk(ctx, ChunkRequest{
			SourceLocale: params.SourceLocale,
			TargetLocale: params.TargetLocale,
			WorkflowID:   workflowID,
			Fast:         params.Fast,
			Data:         chunk,
			Reference:    params.Reference,
			Hints:        params.Hints,
		})
		if err != nil {
			err = asCancelled(ctx, err)
			e.logger.DebugContext(ctx, "chunk failed",
				slog.String("workflow_id", workflowID),
				slog.Int("chunk", i+1),
				errAttr(err),
			)
			return nil, err
		}
		if processed == nil {
			processed = payload.New(0)
		}

		if progress != nil {
			progress(percentDone(i+1, len(chunks)), chunk, processed)
		}
		result.Merge(processed)
	}

	return result, nil
}

func percentDone(done, total int) int {
	return int(math.Round(100 * float64(done) / float64(total)))
}
