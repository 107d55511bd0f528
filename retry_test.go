package golingo

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ZaguanLabs/golingo/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
	}
}

func TestRetry_Success(t *testing.T) {
	callCount := 0
	result, err := Retry(context.Background(), fastRetry(), func() (string, error) {
		callCount++
		return "success", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestRetry_RetryableError(t *testing.T) {
	callCount := 0
	result, err := Retry(context.Background(), fastRetry(), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", &ServerError{StatusCode: 503, Status: "503 Service Unavailable"}
		}
		return "success", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestRetry_NonRetryableError(t *testing.T) {
	callCount := 0
	_, err := Retry(context.Background(), fastRetry(), func() (string, error) {
		callCount++
		return "", &InvalidRequestError{Status: "400 Bad Request"}
	})

	var invalid *InvalidRequestError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, 1, callCount)
}

func TestRetry_MaxRetriesExceeded(t *testing.T) {
	callCount := 0
	_, err := Retry(context.Background(), fastRetry(), func() (string, error) {
		callCount++
		return "", &ServerError{StatusCode: 500, Status: "500 Internal Server Error"}
	})

	var serverErr *ServerError
	assert.True(t, errors.As(err, &serverErr))
	assert.Equal(t, 4, callCount) // initial + 3 retries
}

func TestRetry_ContextCanceled(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 10, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}
	ctx, cancel := context.WithCancel(context.Background())

	callCount := 0
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Retry(ctx, cfg, func() (string, error) {
		callCount++
		return "", &ServerError{StatusCode: 502}
	})

	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, callCount, 10)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", &ServerError{StatusCode: 500}, true},
		{"wrapped server error", errors.Join(errors.New("chunk 2"), &ServerError{StatusCode: 502}), true},
		{"invalid request", &InvalidRequestError{}, false},
		{"remote rejected", &RemoteRejectedError{Message: "quota"}, false},
		{"unknown http", &UnknownHTTPError{StatusCode: 401}, false},
		{"cancelled", &CancelledError{Cause: context.Canceled}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.BaseDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
}

func TestRetryingTranslator(t *testing.T) {
	var calls atomic.Int32
	inner := translatorFunc(func(ctx context.Context, req ChunkRequest) (*payload.Payload, error) {
		if calls.Add(1) < 2 {
			return nil, &ServerError{StatusCode: 503}
		}
		return payload.FromPairs("k", "translated"), nil
	})

	out, err := NewRetryingTranslator(inner, fastRetry()).TranslateChunk(context.Background(), ChunkRequest{TargetLocale: "es"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k": "translated"}, out.Map())
	assert.Equal(t, int32(2), calls.Load())
}

func TestEngine_RetriesOnlyWhenEnabled(t *testing.T) {
	api := newStubAPI(t)
	var failures atomic.Int32
	api.setRespond(func(w http.ResponseWriter, path string, req capturedRequest) {
		if failures.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, map[string]any{"data": map[string]string{"text": "hola"}})
	})

	_, err := api.engine(t, EngineConfig{}).LocalizeText(context.Background(), "hello", esParams, nil)
	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Len(t, api.calls(), 1)

	out, err := api.engine(t, EngineConfig{}, WithRetry(fastRetry())).LocalizeText(context.Background(), "hello", esParams, nil)
	require.NoError(t, err)
	assert.Equal(t, "hola", out)
	assert.Len(t, api.calls(), 2)
}
