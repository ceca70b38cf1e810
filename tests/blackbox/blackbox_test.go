package blackbox

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"mistralbridge/internal/mockapi"
	"mistralbridge/pkg/llm"
	"mistralbridge/pkg/mistral"
)

// End-to-end: the real client against the mock endpoint over actual HTTP.
func TestClientAgainstMockServer(t *testing.T) {
	srv := httptest.NewServer(mockapi.New("blackbox-token", func(prompt string) string {
		return "  completed: " + prompt + "  "
	}).NewMux())
	defer srv.Close()

	c := mistral.New(mistral.Config{
		Endpoint:  srv.URL + "/v1/generate",
		AuthToken: "blackbox-token",
		Timeout:   5 * time.Second,
	})

	got, err := c.Generate(context.Background(), "write a haiku", llm.Options{Stop: []string{"\n\n"}})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got != "completed: write a haiku" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestClientAuthRejectedByMockServer(t *testing.T) {
	srv := httptest.NewServer(mockapi.New("right-token", nil).NewMux())
	defer srv.Close()

	c := mistral.New(mistral.Config{Endpoint: srv.URL + "/v1/generate", AuthToken: "wrong-token"})
	_, err := c.Generate(context.Background(), "hi", llm.Options{})
	if !mistral.IsHTTPError(err) {
		t.Fatalf("expected HTTP error on bad token, got %v", err)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected 401 in error, got %v", err)
	}
}

// Concurrent callers share one immutable client; every exchange is independent.
func TestClientConcurrentGenerate(t *testing.T) {
	srv := httptest.NewServer(mockapi.New("tok", func(prompt string) string {
		return prompt
	}).NewMux())
	defer srv.Close()

	c := mistral.New(mistral.Config{Endpoint: srv.URL + "/v1/generate", AuthToken: "tok"})

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Generate(context.Background(), "p", llm.Options{})
			if err != nil {
				errs <- err
				return
			}
			if got != "p" {
				t.Errorf("unexpected text: %q", got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent Generate() error: %v", err)
	}
}
