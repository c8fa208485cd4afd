package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"dogfood/internal/config"
	"dogfood/internal/feeding"
	"dogfood/internal/metrics"
)

const (
	completionsPath       = "/api/v1/chat/completions"
	defaultTimeoutSeconds = 10
)

// Suggester returns the agent's next-portion suggestion for the given logs.
type Suggester interface {
	GetSuggestion(ctx context.Context, events []feeding.Event, now time.Time) (string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Messages              []chatMessage `json:"messages"`
	Stream                bool          `json:"stream"`
	IncludeFunctionsInfo  bool          `json:"include_functions_info"`
	IncludeRetrievalInfo  bool          `json:"include_retrieval_info"`
	IncludeGuardrailsInfo bool          `json:"include_guardrails_info"`
}

type completionResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls the agent chat-completions endpoint once per suggestion.
type Client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient builds a Client from the agent settings in cfg.
func NewClient(cfg config.Config, log *slog.Logger) *Client {
	timeoutSeconds := cfg.AgentTimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		accessKey: strings.TrimSpace(cfg.AgentAccessKey),
		baseURL:   strings.TrimRight(strings.TrimSpace(cfg.AgentEndpoint), "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		log: log.With(slog.String("component", "agent")),
	}
}

func (c *Client) GetSuggestion(ctx context.Context, events []feeding.Event, now time.Time) (string, error) {
	prompt := feeding.BuildPrompt(events, now)
	c.log.Debug("built agent prompt", slog.Int("events", len(events)), slog.String("prompt", prompt))

	started := time.Now()
	suggestion, err := c.complete(ctx, prompt)
	result := "success"
	if kind, ok := KindOf(err); ok {
		result = string(kind)
		c.log.Warn("agent suggestion failed", slog.String("kind", result), slog.Any("err", err))
	}
	metrics.ObserveAgentRequest(result, time.Since(started))
	return suggestion, err
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	bodyRaw, err := json.Marshal(completionRequest{
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &GatewayError{Kind: KindTransport, Err: err}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(bodyRaw))
	if err != nil {
		return "", &GatewayError{Kind: KindTransport, Err: err}
	}
	request.Header.Set("Authorization", "Bearer "+c.accessKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", &GatewayError{
			Kind:       KindHTTPStatus,
			StatusCode: response.StatusCode,
			Body:       string(responseBody),
		}
	}

	return extractContent(responseBody)
}

func extractContent(body []byte) (string, error) {
	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &GatewayError{Kind: KindMalformedResponse, Body: truncateForLog(string(body), 1200), Err: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &GatewayError{Kind: KindMalformedResponse, Body: truncateForLog(string(body), 1200), Err: errors.New("choices is empty")}
	}
	message := parsed.Choices[0].Message
	if message == nil || message.Content == nil {
		return "", &GatewayError{
			Kind: KindMalformedResponse,
			Body: truncateForLog(string(body), 1200),
			Err:  fmt.Errorf("choices[0].message.content is missing"),
		}
	}
	return *message.Content, nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &GatewayError{Kind: KindTimeout, Err: err}
	}
	return &GatewayError{Kind: KindTransport, Err: err}
}

func truncateForLog(value string, limit int) string {
	trimmed := strings.TrimSpace(value)
	if limit <= 0 || len(trimmed) <= limit {
		return trimmed
	}
	return trimmed[:limit] + "...(truncated)"
}
