package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const anthropicVersion = "2023-06-01"

// anthropicClient implements VisionClient using the Anthropic Messages API.
type anthropicClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewAnthropicClient creates a VisionClient for the Anthropic Messages API.
// It fails with ErrMissingAPIKey when cfg.APIKey is empty.
func NewAnthropicClient(cfg LLMConfig, observer Observer) (VisionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: set WOODGENIE_API_KEY or ANTHROPIC_API_KEY", ErrMissingAPIKey)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint(ProviderAnthropic)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel(ProviderAnthropic)
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &anthropicClient{
		cfg:      cfg,
		http:     newHTTPClient(),
		observer: observer,
	}, nil
}

// anthropicRequest is the JSON body sent to POST /v1/messages.
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// anthropicResponse is the subset of the Messages API response we read.
type anthropicResponse struct {
	Model   string             `json:"model"`
	Content []anthropicContent `json:"content"`
}

func (c *anthropicClient) Provider() string { return ProviderAnthropic }

func (c *anthropicClient) Generate(ctx context.Context, req VisionRequest) (*GenerateResponse, error) {
	start := time.Now()

	temp, maxTok, timeout := resolveTask(c.cfg, req)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body := anthropicRequest{
		Model:       c.cfg.Model,
		MaxTokens:   maxTok,
		System:      req.SystemPrompt,
		Temperature: temp,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []anthropicContent{
				{
					Type: "image",
					Source: &anthropicSource{
						Type:      "base64",
						MediaType: req.Image.MimeType,
						Data:      req.Image.Base64,
					},
				},
				{Type: "text", Text: req.UserPrompt},
			},
		}},
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			text, textErr := firstText(resp)
			if textErr != nil {
				lastErr = textErr
				break
			}
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  ProviderAnthropic,
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      text,
				Model:     resp.Model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Don't retry on cancellation, timeout or rejected credentials.
		if ctx.Err() != nil || errors.Is(err, ErrAuth) {
			break
		}
	}

	if ctx.Err() != nil {
		lastErr = fmt.Errorf("%w: %v", ErrTimeout, lastErr)
	} else if isConnectionError(lastErr) {
		lastErr = fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  ProviderAnthropic,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: ErrorCode(lastErr),
	})
	return nil, lastErr
}

func (c *anthropicClient) doRequest(ctx context.Context, body anthropicRequest) (*anthropicResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/v1/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, classifyStatus(httpResp.StatusCode, string(respBody))
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response envelope: %v", ErrInvalidOutput, err)
	}

	return &resp, nil
}

func firstText(resp *anthropicResponse) (string, error) {
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
