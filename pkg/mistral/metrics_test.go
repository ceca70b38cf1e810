package mistral

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mistralbridge/pkg/llm"
)

// TestGenerate_EmitsMetrics verifies that a generate call results in client
// metrics being exposed via the Prometheus /metrics handler.
func TestGenerate_EmitsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outputs":[{"text":"ok"}]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Generate(context.Background(), "hi", llm.Options{}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// Scrape the default registry and ensure our metric name is present
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	promhttp.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("mistralbridge_client_generate_total")) {
		t.Fatalf("expected mistralbridge_client_generate_total in metrics output")
	}
}
