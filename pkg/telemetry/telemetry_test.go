package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ghuser/stockroom/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "test-service",
		ServiceVersion: "test",
		Environment:    "testing",
		OtelEndpoint:   "", // disabled
	}
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown")
	}
	if handler == nil {
		t.Fatal("expected non-nil metrics handler")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_MetricsHandlerServesPrometheusFormat(t *testing.T) {
	_, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	ct := rr.Header().Get("Content-Type")
	if !strings.Contains(ct, "text/plain") {
		t.Errorf("expected text/plain content-type, got %q", ct)
	}
}

func TestCatalogMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck
	otel.SetMeterProvider(mp)

	m, err := NewCatalogMetrics()
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}
	m.Mutation(context.Background(), "category", "create", OutcomeOK)
	m.Denial(context.Background(), "category", "has dependents", "unauthorized")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	seen := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			seen[md.Name] = true
		}
	}
	for _, want := range []string{"catalog.mutations", "catalog.deletion_denials"} {
		if !seen[want] {
			t.Errorf("expected instrument %s to be recorded, got %v", want, seen)
		}
	}
}

func TestCatalogMetrics_NilIsNoop(t *testing.T) {
	var m *CatalogMetrics
	m.Mutation(context.Background(), "item", "delete", OutcomeDenied)
	m.Denial(context.Background(), "item", "unauthorized")
}

func TestSampler_ByEnvironment(t *testing.T) {
	var id trace.TraceID
	for i := range id {
		id[i] = 0xff
	}
	params := func() sdktrace.SamplingParameters {
		return sdktrace.SamplingParameters{ParentContext: context.Background(), TraceID: id}
	}
	if got := sampler(config.EnvDevelopment).ShouldSample(params()).Decision; got != sdktrace.RecordAndSample {
		t.Errorf("development should sample every trace, got %v", got)
	}
	// the maximal trace id is above every ratio threshold below 1
	if got := sampler(config.EnvProduction).ShouldSample(params()).Decision; got != sdktrace.Drop {
		t.Errorf("production should drop traces above the ratio, got %v", got)
	}
}

func TestEndpointOptions(t *testing.T) {
	tests := []struct {
		endpoint string
		wantURL  bool
		wantOpts int
	}{
		{"otel-collector:4318", false, 2},
		{"http://otel-collector:4318", true, 1},
		{"https://otlp.example.com", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			if got := isURL(tt.endpoint); got != tt.wantURL {
				t.Errorf("isURL = %v, want %v", got, tt.wantURL)
			}
			if n := len(traceEndpoint(tt.endpoint)); n != tt.wantOpts {
				t.Errorf("trace options = %d, want %d", n, tt.wantOpts)
			}
			if n := len(metricEndpoint(tt.endpoint)); n != tt.wantOpts {
				t.Errorf("metric options = %d, want %d", n, tt.wantOpts)
			}
		})
	}
}
