package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// VisionRequest holds the parameters for a single image-plus-text call.
type VisionRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Image        Image
	Schema       *Schema  // optional; used by providers with structured output
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// VisionClient provides access to a multimodal model.
type VisionClient interface {
	// Generate sends an image with instructions and returns the raw text response.
	Generate(ctx context.Context, req VisionRequest) (*GenerateResponse, error)

	// Provider names the backing service, e.g. "anthropic".
	Provider() string
}

// Schema is a provider-neutral description of a JSON response shape.
type Schema struct {
	Type        string // object, array, string, integer
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// NewVisionClient builds the client for cfg.Provider. A missing API key is
// reported before any network traffic.
func NewVisionClient(ctx context.Context, cfg LLMConfig, observer Observer) (VisionClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderAnthropic:
		return NewAnthropicClient(cfg, observer)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// resolveTask applies per-request overrides on top of the task defaults.
func resolveTask(cfg LLMConfig, req VisionRequest) (temp float64, maxTok int, timeout time.Duration) {
	taskCfg := cfg.Tasks[req.Task]
	temp = taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok = taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	if maxTok <= 0 {
		maxTok = 4096
	}
	timeout = time.Duration(cfg.TaskTimeout(req.Task)) * time.Millisecond
	return temp, maxTok, timeout
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// classifyStatus maps an HTTP status to a sentinel error.
func classifyStatus(status int, body string) error {
	if len(body) > 512 {
		body = body[:512]
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrAuth, status, body)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUpstreamStatus, status, body)
	}
}
