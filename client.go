package golingo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ZaguanLabs/golingo/payload"
)

// apiClient talks to the remote localization API. It never retries.
type apiClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type i18nRequest struct {
	Params    i18nParams                    `json:"params"`
	Locale    i18nLocale                    `json:"locale"`
	Data      *payload.Payload              `json:"data"`
	Reference map[LocaleCode]map[string]any `json:"reference,omitempty"`
	Hints     map[string][]string           `json:"hints,omitempty"`
}

type i18nParams struct {
	WorkflowID string `json:"workflowId"`
	Fast       bool   `json:"fast"`
}

type i18nLocale struct {
	Source *LocaleCode `json:"source"`
	Target LocaleCode  `json:"target"`
}

type i18nResponse struct {
	Data  *payload.Payload `json:"data"`
	Error json.RawMessage  `json:"error"`
}

// TranslateChunk posts one chunk to /i18n.
func (c *apiClient) TranslateChunk(ctx context.Context, req ChunkRequest) (*payload.Payload, error) {
	body := i18nRequest{
		Params: i18nParams{WorkflowID: req.WorkflowID, Fast: req.Fast},
		Locale: i18nLocale{Target: req.TargetLocale},
		Data:   req.Data,
	}
	if req.SourceLocale != "" {
		source := req.SourceLocale
		body.Locale.Source = &source
	}
	if len(req.Reference) > 0 {
		body.Reference = req.Reference
	}
	if len(req.Hints) > 0 {
		body.Hints = req.Hints
	}
	if body.Data == nil {
		body.Data = payload.New(0)
	}

	resp, respBody, err := c.post(ctx, "/i18n", body)
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.StatusCode) {
		switch {
		case resp.StatusCode >= 500 && resp.StatusCode < 600:
			return nil, &ServerError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(respBody)}
		case resp.StatusCode == http.StatusBadRequest:
			return nil, &InvalidRequestError{Status: resp.Status}
		default:
			return nil, &UnknownHTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
		}
	}

	var decoded i18nResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decoding localization response: %w", err)
	}
	if msg := envelopeError(decoded.Error); decoded.Data == nil && msg != "" {
		return nil, &RemoteRejectedError{Message: msg}
	}
	if decoded.Data == nil {
		return payload.New(0), nil
	}
	return decoded.Data, nil
}

// envelopeError renders the error field of a response envelope. Strings are
// unquoted; objects and other values are kept as raw JSON.
func envelopeError(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// recognize posts text to /recognize and returns the detected locale.
func (c *apiClient) recognize(ctx context.Context, text string) (LocaleCode, error) {
	resp, respBody, err := c.post(ctx, "/recognize", map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	if !isSuccess(resp.StatusCode) {
		if resp.StatusCode >= 500 && resp.StatusCode < 600 {
			return "", &ServerError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(respBody)}
		}
		return "", &RecognitionError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var decoded struct {
		Locale LocaleCode `json:"locale"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decoding recognition response: %w", err)
	}
	return decoded.Locale, nil
}

// whoami posts to /whoami. A nil identity means the key is not
// authenticated; only 5xx responses and cancellation are errors.
func (c *apiClient) whoami(ctx context.Context) (*Identity, error) {
	resp, respBody, err := c.post(ctx, "/whoami", nil)
	if err != nil {
		var cancelled *CancelledError
		if errors.As(err, &cancelled) {
			return nil, err
		}
		c.logger.DebugContext(ctx, "whoami request failed", errAttr(err))
		return nil, nil
	}

	if !isSuccess(resp.StatusCode) {
		if resp.StatusCode >= 500 && resp.StatusCode < 600 {
			return nil, &ServerError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(respBody)}
		}
		return nil, nil
	}

	var identity Identity
	if err := json.Unmarshal(respBody, &identity); err != nil {
		c.logger.DebugContext(ctx, "whoami response not decodable", errAttr(err))
		return nil, nil
	}
	if identity.Email == "" {
		return nil, nil
	}
	return &identity, nil
}

// post sends a JSON body (or none when body is nil) and reads the full
// response. Transport failures caused by ctx become CancelledError.
func (c *apiClient) post(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, &CancelledError{Cause: err}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, asCancelled(ctx, fmt.Errorf("sending request to %s: %w", path, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, asCancelled(ctx, fmt.Errorf("reading response from %s: %w", path, err))
	}

	c.logger.DebugContext(ctx, "api response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(respBody)),
	)
	return resp, respBody, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

var _ ChunkTranslator = (*apiClient)(nil)
