// internal/assistant/genai.go
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrGenAITimeout = errors.New("GENAI_TIMEOUT")
	ErrGenAIFailed  = errors.New("GENAI_FAILED")
)

const systemPrompt = "You are ShopMate, an AI shopping assistant that helps users find " +
	"products from our database based on their needs, tags, and filters like price, " +
	"brand, category. Keep responses short and helpful."

type GenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GenAIClient calls an OpenAI-compatible chat-completions endpoint. It backs
// the optional fallback for utterances no intent pattern matches; any failure
// here degrades to the fixed help reply.
type GenAIClient struct {
	config *GenAIConfig
	client *http.Client
}

func NewGenAIClient(config *GenAIConfig) *GenAIClient {
	return &GenAIClient{
		config: config,
		// No client timeout; the per-request context bounds the call.
		client: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *GenAIClient) Complete(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	requestBody := map[string]interface{}{
		"model": c.config.Model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	}

	body, _ := json.Marshal(requestBody)
	req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenAIFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", ErrGenAITimeout
		}
		return "", fmt.Errorf("%w: %v", ErrGenAIFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrGenAIFailed, resp.StatusCode)
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrGenAIFailed, err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenAIFailed)
	}
	return parsed.Choices[0].Message.Content, nil
}
