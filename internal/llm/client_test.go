package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestComplete tests the generate round-trip and failure modes.
func TestComplete(t *testing.T) {
	t.Parallel()

	t.Run("returns the generated text", func(t *testing.T) {
		t.Parallel()

		var gotReq generateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/generate" {
				t.Errorf("expected /api/generate, got %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"response": "weather, forecast, rain"})
		}))
		defer srv.Close()

		c := NewClient(WithBaseURL(srv.URL), WithModel("testmodel"))
		got, err := c.Complete(context.Background(), "extract terms", 100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "weather, forecast, rain" {
			t.Errorf("expected generated text, got %q", got)
		}
		if gotReq.Model != "testmodel" {
			t.Errorf("expected model 'testmodel', got %q", gotReq.Model)
		}
		if gotReq.Stream {
			t.Error("expected stream disabled")
		}
		if gotReq.Options.NumPredict != 100 {
			t.Errorf("expected num_predict 100, got %d", gotReq.Options.NumPredict)
		}
	})

	t.Run("non-200 status is a RequestError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}))
		defer srv.Close()

		c := NewClient(WithBaseURL(srv.URL))
		_, err := c.Complete(context.Background(), "prompt", 10)

		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("expected *RequestError, got %v", err)
		}
		if reqErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", reqErr.StatusCode)
		}
	})

	t.Run("unreachable server is a RequestError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		addr := srv.URL
		srv.Close()

		c := NewClient(WithBaseURL(addr))
		_, err := c.Complete(context.Background(), "prompt", 10)

		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("expected *RequestError, got %v", err)
		}
	})

	t.Run("malformed response body is a RequestError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		c := NewClient(WithBaseURL(srv.URL))
		_, err := c.Complete(context.Background(), "prompt", 10)

		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("expected *RequestError, got %v", err)
		}
	})
}
