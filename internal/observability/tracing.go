package observability

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"
)

// Span times one unit of work, such as an HTTP request or a dashboard
// recomputation. Spans nest through the context.
type Span struct {
	TraceID   string            `json:"trace_id"`
	SpanID    string            `json:"span_id"`
	ParentID  string            `json:"parent_id,omitempty"`
	Operation string            `json:"operation"`
	StartTime time.Time         `json:"start_time"`
	Duration  time.Duration     `json:"duration"`
	Tags      map[string]string `json:"tags,omitempty"`
	Status    SpanStatus        `json:"status"`
	Error     string            `json:"error,omitempty"`
	finished  bool
}

type SpanStatus string

const (
	SpanStatusOK    SpanStatus = "OK"
	SpanStatusError SpanStatus = "ERROR"
)

type spanContextKey struct{}

func StartSpan(ctx context.Context, operation string) (context.Context, *Span) {
	span := &Span{
		TraceID:   generateID(),
		SpanID:    generateID(),
		Operation: operation,
		StartTime: time.Now(),
		Status:    SpanStatusOK,
		Tags:      make(map[string]string),
	}

	if parent := GetSpan(ctx); parent != nil {
		span.ParentID = parent.SpanID
		span.TraceID = parent.TraceID
	}

	return context.WithValue(ctx, spanContextKey{}, span), span
}

// Finish records the duration. Calling it more than once keeps the first duration.
func (s *Span) Finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.Duration = time.Since(s.StartTime)
}

// End finishes the span and logs it at debug level.
func (s *Span) End(logger *slog.Logger) {
	s.Finish()

	attrs := []any{
		"operation", s.Operation,
		"trace_id", s.TraceID,
		"span_id", s.SpanID,
		"duration", s.Duration,
		"status", s.Status,
	}
	if s.ParentID != "" {
		attrs = append(attrs, "parent_id", s.ParentID)
	}
	for k, v := range s.Tags {
		attrs = append(attrs, k, v)
	}
	if s.Error != "" {
		attrs = append(attrs, "error", s.Error)
	}
	logger.Debug("span finished", attrs...)
}

func (s *Span) SetTag(key, value string) {
	if s.Tags == nil {
		s.Tags = make(map[string]string)
	}
	s.Tags[key] = value
}

func (s *Span) SetError(err error) {
	s.Status = SpanStatusError
	if err != nil {
		s.Error = err.Error()
	}
}

func GetSpan(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanContextKey{}).(*Span); ok {
		return span
	}
	return nil
}

func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
