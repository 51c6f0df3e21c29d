package llm

import (
	"context"
	"io"
	"log/slog"
)

// LLMCallEvent records metadata about a single AI invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  string
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// ParseEvent records a failure to turn the input image or the model's
// text into a result. It happens locally, after or instead of a call.
type ParseEvent struct {
	Task      TaskType
	Provider  string
	ErrorCode string
}

// Observer receives events about AI calls for logging and metrics.
// OnCallComplete fires once per request sent; OnParseFailure fires when
// the caller rejects the input or the returned text.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
	OnParseFailure(event ParseEvent)
}

// LogObserver writes AI call events through a slog text handler.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", string(event.Task),
		"provider", event.Provider,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		attrs = append(attrs, "status", "err:"+event.ErrorCode)
		o.logger.WarnContext(context.Background(), "llm_call", attrs...)
		return
	}
	attrs = append(attrs, "status", "ok")
	o.logger.InfoContext(context.Background(), "llm_call", attrs...)
}

func (o *LogObserver) OnParseFailure(event ParseEvent) {
	o.logger.WarnContext(context.Background(), "llm_parse",
		"task", string(event.Task),
		"provider", event.Provider,
		"status", "err:"+event.ErrorCode,
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
func (NoopObserver) OnParseFailure(ParseEvent) {}
