// internal/speech/speech.go
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shopmate-api/internal/common/logger"
)

var (
	// ErrUnsupported means no transcription backend is configured; callers
	// should tell the user to type instead. It is distinct from runtime
	// failures, which are retryable.
	ErrUnsupported = errors.New("TRANSCRIPTION_UNSUPPORTED")
	ErrFailed      = errors.New("TRANSCRIPTION_FAILED")
)

// Transcriber converts one spoken utterance into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// HTTPTranscriber forwards audio to a speech-to-text service and reads back
// the transcript. The recognition locale is fixed per deployment.
type HTTPTranscriber struct {
	url     string
	locale  string
	timeout time.Duration
	client  *http.Client
	logger  logger.Logger
}

func NewHTTPTranscriber(providerURL, locale string, timeout time.Duration, log logger.Logger) *HTTPTranscriber {
	return &HTTPTranscriber{
		url:     providerURL,
		locale:  locale,
		timeout: timeout,
		client:  &http.Client{},
		logger:  log.WithFields(map[string]interface{}{"component": "transcriber"}),
	}
}

func (t *HTTPTranscriber) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	endpoint := t.url + "?language=" + url.QueryEscape(t.locale)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrFailed, resp.StatusCode)
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrFailed, err)
	}
	if body.Text == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrFailed)
	}

	t.logger.Debug("transcription completed", map[string]interface{}{
		"locale": t.locale,
		"length": len(body.Text),
	})
	return body.Text, nil
}

// Unsupported is the Transcriber used when no provider URL is configured.
type Unsupported struct{}

func (Unsupported) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	return "", ErrUnsupported
}
