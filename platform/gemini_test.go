package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_BASE_URL", server.URL)
	t.Setenv("GEMINI_MODEL", "gemini-test")

	client, err := NewGeminiClient()
	if err != nil {
		t.Fatalf("NewGeminiClient error: %v", err)
	}
	return client, server
}

func TestGeminiClientRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewGeminiClient(); err == nil {
		t.Fatalf("expected error without GEMINI_API_KEY")
	}
}

func TestGeminiClientGenerate(t *testing.T) {
	var gotPath string
	var gotBody geminiRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]string{{"text": "generated reply"}},
						"role":  "model",
					},
					"finishReason": "STOP",
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	text, err := client.Generate(context.Background(), "hello prompt")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != "generated reply" {
		t.Fatalf("unexpected text %q", text)
	}
	if !strings.Contains(gotPath, "models/gemini-test:generateContent") {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 ||
		gotBody.Contents[0].Parts[0].Text != "hello prompt" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestGeminiClientNon200IsGenerationError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := client.Generate(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestGeminiClientMalformedBodyIsGenerationError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Generate(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestGeminiClientEmptyCandidatesIsGenerationError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := client.Generate(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestGeminiClientDoesNotRetry(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, _ = client.Generate(context.Background(), "p")
	if calls != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", calls)
	}
}
