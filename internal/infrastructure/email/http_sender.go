package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tokenestate/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// HTTPSender posts messages to a Resend-compatible API
type HTTPSender struct {
	endpoint   string
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPSender creates a sender from config
func NewHTTPSender(cfg config.EmailConfig, logger *zap.Logger) (*HTTPSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("email: api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

type sendRequest struct {
	From    string     `json:"from"`
	To      []string   `json:"to"`
	Subject string     `json:"subject"`
	HTML    string     `json:"html,omitempty"`
	Text    string     `json:"text,omitempty"`
	ReplyTo string     `json:"reply_to,omitempty"`
	Tags    []emailTag `json:"tags,omitempty"`
}

type emailTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send implements Sender
func (s *HTTPSender) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("%w: no recipients", ErrRequestRejected)
	}
	body := sendRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}
	for k, v := range msg.Tags {
		body.Tags = append(body.Tags, emailTag{Name: k, Value: v})
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("email: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("email: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("email: failed to read response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("%w: HTTP %d", ErrProviderUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return "", fmt.Errorf("%w: %s - %s", ErrRequestRejected, errResp.Name, errResp.Message)
		}
		return "", fmt.Errorf("%w: HTTP %d", ErrRequestRejected, resp.StatusCode)
	}

	var out sendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("email: failed to decode response: %w", err)
	}
	s.logger.Debug("Email sent", zap.String("message_id", out.ID), zap.Int("recipients", len(msg.To)))
	return out.ID, nil
}

// LogSender records messages in the log instead of sending them. It is used
// when e-mail delivery is disabled.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send implements Sender
func (s *LogSender) Send(_ context.Context, msg Message) (string, error) {
	s.logger.Info("Email delivery disabled, message not sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject))
	return "", nil
}
