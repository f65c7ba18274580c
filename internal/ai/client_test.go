package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerate_SendsChatPayload(t *testing.T) {
	var got completionRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "xin chào"}}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "", "secret-key")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	reply, err := client.Generate(context.Background(), "chào bạn", 500, 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "xin chào" {
		t.Fatalf("reply = %q", reply)
	}
	if auth != "Bearer secret-key" {
		t.Fatalf("Authorization = %q", auth)
	}
	if got.Model != defaultModel {
		t.Fatalf("model = %q", got.Model)
	}
	if got.MaxTokens != 500 || got.Stream {
		t.Fatalf("payload = %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "chào bạn" {
		t.Fatalf("messages = %+v", got.Messages)
	}
}

func TestGenerate_LegacyTextChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"text": "completion only"}]}`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "local-model", "")
	reply, err := client.Generate(context.Background(), "hi", 100, 0.7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "completion only" {
		t.Fatalf("reply = %q", reply)
	}
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "", "")
	_, err := client.Generate(context.Background(), "hi", 100, 0)

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
	if genErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", genErr.Status)
	}
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "", "")
	if _, err := client.Generate(context.Background(), "hi", 100, 0); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestNewClient_RequiresURL(t *testing.T) {
	if _, err := NewClient("", "", ""); err == nil {
		t.Fatal("expected error for missing api url")
	}
}
