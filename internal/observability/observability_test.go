package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"sales-dashboard/internal/config"
)

func TestNewLoggerTo_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "warn", Format: "text"})

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "k=v") {
		t.Errorf("expected text record, got %s", out)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(NewLoggerTo(&buf, config.LoggerConfig{Level: "info", Format: "json"}), "analytics")

	logger.Info("loaded")

	if !strings.Contains(buf.String(), `"component":"analytics"`) {
		t.Errorf("expected component attribute, got %s", buf.String())
	}
}

func TestSpan_NestingAndEnd(t *testing.T) {
	ctx, parent := StartSpan(context.Background(), "dashboard")
	_, child := StartSpan(ctx, "dashboard.filter")

	if child.TraceID != parent.TraceID {
		t.Errorf("child trace = %s, want %s", child.TraceID, parent.TraceID)
	}
	if child.ParentID != parent.SpanID {
		t.Errorf("child parent = %s, want %s", child.ParentID, parent.SpanID)
	}

	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "debug", Format: "text"})
	child.SetTag("records", "50")
	child.SetError(errors.New("boom"))
	child.End(logger)

	out := buf.String()
	for _, want := range []string{"operation=dashboard.filter", "records=50", "status=ERROR", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("span log missing %q: %s", want, out)
		}
	}
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("GetRequestID() = %q, want abc", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
