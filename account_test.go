package golingo

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognizeLocale(t *testing.T) {
	api := newStubAPI(t)
	api.setRespond(func(w http.ResponseWriter, path string, req capturedRequest) {
		if path != "/recognize" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"locale": "fr"})
	})

	locale, err := api.engine(t, EngineConfig{}).RecognizeLocale(context.Background(), "Bonjour le monde")
	require.NoError(t, err)
	assert.Equal(t, LocaleCode("fr"), locale)

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `"Bonjour le monde"`, string(calls[0].Raw["text"]))
	assert.Equal(t, "Bearer test-key", calls[0].Header.Get("Authorization"))
}

func TestRecognizeLocale_Errors(t *testing.T) {
	api := newStubAPI(t)
	var status atomic.Int32
	status.Store(http.StatusInternalServerError)
	api.setRespond(func(w http.ResponseWriter, _ string, _ capturedRequest) {
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte("oops"))
	})
	e := api.engine(t, EngineConfig{})

	_, err := e.RecognizeLocale(context.Background(), "x")
	var serverErr *ServerError
	assert.ErrorAs(t, err, &serverErr)

	status.Store(http.StatusUnprocessableEntity)
	_, err = e.RecognizeLocale(context.Background(), "x")
	var recognition *RecognitionError
	require.ErrorAs(t, err, &recognition)
	assert.Equal(t, http.StatusUnprocessableEntity, recognition.StatusCode)
	assert.Equal(t, "oops", recognition.Body)
}

func TestWhoAmI(t *testing.T) {
	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
		want    *Identity
		wantErr bool
	}{
		{
			name: "authenticated",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, map[string]string{"email": "dev@example.com", "id": "u_1"})
			},
			want: &Identity{Email: "dev@example.com", ID: "u_1"},
		},
		{
			name: "no email",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, map[string]string{"id": "u_1"})
			},
		},
		{
			name:    "unauthorized",
			respond: func(w http.ResponseWriter) { w.WriteHeader(http.StatusUnauthorized) },
		},
		{
			name: "garbage",
			respond: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
		{
			name:    "server error",
			respond: func(w http.ResponseWriter) { w.WriteHeader(http.StatusBadGateway) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newStubAPI(t)
			api.setRespond(func(w http.ResponseWriter, _ string, _ capturedRequest) { tt.respond(w) })

			got, err := api.engine(t, EngineConfig{}).WhoAmI(context.Background())
			if tt.wantErr {
				var serverErr *ServerError
				assert.ErrorAs(t, err, &serverErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWhoAmI_TransportFailure(t *testing.T) {
	api := newStubAPI(t)
	e := api.engine(t, EngineConfig{})
	api.Close()

	got, err := e.WhoAmI(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestWhoAmI_Cancelled(t *testing.T) {
	api := newStubAPI(t)
	api.setRespond(func(w http.ResponseWriter, _ string, _ capturedRequest) {
		time.Sleep(200 * time.Millisecond)
	})
	e := api.engine(t, EngineConfig{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := e.WhoAmI(ctx)
	assert.True(t, errors.Is(err, ErrCancelled))
}
