// Package llm talks to an OpenAI-compatible chat-completions gateway.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var (
	// ErrGatewayUnavailable is returned on transport failures, 5xx and 429
	ErrGatewayUnavailable = errors.New("llm: gateway unavailable")
	// ErrEmptyCompletion is returned when the gateway answers without text
	ErrEmptyCompletion = errors.New("llm: empty completion")
	// ErrRequestRejected is returned for other 4xx responses
	ErrRequestRejected = errors.New("llm: request rejected")
)

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the extracted answer
type Completion struct {
	Text             string
	Model            string
	FinishReason     string
	PromptTokens     int64
	CompletionTokens int64
}

// Completer produces a completion for a conversation
type Completer interface {
	Complete(ctx context.Context, messages []Message) (*Completion, error)
}

// Gateway is an HTTP Completer
type Gateway struct {
	endpoint    string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewGateway creates a gateway client from config
func NewGateway(cfg config.InsightsConfig, logger *zap.Logger) (*Gateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: api key is required")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("llm: endpoint is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		endpoint:    cfg.Endpoint,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}, nil
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// Complete implements Completer
func (g *Gateway) Complete(ctx context.Context, messages []Message) (*Completion, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired {
		return nil, fmt.Errorf("%w: HTTP %d %s", ErrGatewayUnavailable, resp.StatusCode, errorMessage(body))
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d %s", ErrRequestRejected, resp.StatusCode, errorMessage(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("llm: malformed response body")
	}

	parsed := gjson.ParseBytes(body)
	out := &Completion{
		Text:             strings.TrimSpace(parsed.Get("choices.0.message.content").String()),
		Model:            parsed.Get("model").String(),
		FinishReason:     parsed.Get("choices.0.finish_reason").String(),
		PromptTokens:     parsed.Get("usage.prompt_tokens").Int(),
		CompletionTokens: parsed.Get("usage.completion_tokens").Int(),
	}
	if out.Text == "" {
		return nil, ErrEmptyCompletion
	}
	g.logger.Debug("LLM completion received",
		zap.String("model", out.Model),
		zap.String("finish_reason", out.FinishReason),
		zap.Int64("prompt_tokens", out.PromptTokens),
		zap.Int64("completion_tokens", out.CompletionTokens))
	return out, nil
}

// errorMessage pulls the provider's message out of either
// {"error":{"message":...}} or {"error":"..."} bodies
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	e := gjson.GetBytes(body, "error")
	if e.IsObject() {
		return e.Get("message").String()
	}
	return e.String()
}
