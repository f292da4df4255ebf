package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwebster45206/world-engine/pkg/chat"
)

func TestOllamaGetChatResponse(t *testing.T) {
	var gotReq map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{
				"role":    "assistant",
				"content": `{"game_events": ["torch_lit"]}`,
			},
		})
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "qwen2.5:14b", testLogger())
	resp, err := svc.GetChatResponse(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "light the torch"},
	})
	if err != nil {
		t.Fatalf("GetChatResponse() error = %v", err)
	}
	if resp.Message != `{"game_events": ["torch_lit"]}` {
		t.Errorf("message = %q", resp.Message)
	}

	// Deterministic structured output is requested on every call.
	if gotReq["format"] != "json" {
		t.Errorf("format = %v, want json", gotReq["format"])
	}
	if gotReq["stream"] != false {
		t.Errorf("stream = %v, want false", gotReq["stream"])
	}
	options, ok := gotReq["options"].(map[string]interface{})
	if !ok || options["temperature"] != 0.0 {
		t.Errorf("options = %v, want temperature 0", gotReq["options"])
	}
}

func TestOllamaGetChatResponseServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "qwen2.5:14b", testLogger())
	_, err := svc.GetChatResponse(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "hello"},
	})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestOllamaInitModelAlreadyPresent(t *testing.T) {
	pulled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"models": []map[string]string{{"name": "qwen2.5:14b"}},
			})
		case "/api/pull":
			pulled = true
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "qwen2.5:14b", testLogger())
	if err := svc.InitModel(context.Background(), "qwen2.5:14b"); err != nil {
		t.Fatalf("InitModel() error = %v", err)
	}
	if pulled {
		t.Error("present model should not be pulled")
	}
}

func TestOllamaInitModelPullsMissing(t *testing.T) {
	pulled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"models": []map[string]string{}})
		case "/api/pull":
			pulled = true
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "qwen2.5:14b", testLogger())
	if err := svc.InitModel(context.Background(), "qwen2.5:14b"); err != nil {
		t.Fatalf("InitModel() error = %v", err)
	}
	if !pulled {
		t.Error("missing model should be pulled")
	}
}
