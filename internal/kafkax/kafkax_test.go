package kafkax

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaderCarrier_SetAppendsAndOverwrites(t *testing.T) {
	c := &kafkaHeaderCarrier{}

	c.Set("traceparent", "00-aa")
	if got := c.Get("traceparent"); got != "00-aa" {
		t.Fatalf("expected appended header, got %q", got)
	}

	c.Set("traceparent", "00-bb")
	if len(c.headers) != 1 || c.Get("traceparent") != "00-bb" {
		t.Fatalf("expected overwrite, got %d headers with value %q", len(c.headers), c.Get("traceparent"))
	}

	c.Set("tracestate", "vendor=1")
	if len(c.headers) != 2 {
		t.Fatalf("expected a second header, got %d", len(c.headers))
	}
}

func TestInjectTraceHeaders_AddsTraceparent(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	headers := InjectTraceHeaders(ctx, nil)
	if HeaderValue(headers, "traceparent") == "" {
		t.Fatal("traceparent header was not injected")
	}
}

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", got)
	}
	if SplitBrokers("") != nil {
		t.Fatal("expected nil for an empty broker list")
	}
}
