package service

import (
	"bootcamp_lms_backend/internal/config"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsModelAndAuth(t *testing.T) {
	var got ChatCompletionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []struct {
				Message AIChatMessage `json:"message"`
			}{
				{Message: AIChatMessage{Role: "assistant", Content: "A slice is a view over an array."}},
			},
		})
	}))
	defer srv.Close()

	svc := NewAIService(config.AssistantConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})

	reply, err := svc.Chat([]AIChatMessage{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "what is a slice?"},
	})
	require.NoError(t, err)

	assert.Equal(t, "A slice is a view over an array.", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestChatProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewAIService(config.AssistantConfig{BaseURL: srv.URL})

	_, err := svc.Chat([]AIChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	}))
	defer srv.Close()

	svc := NewAIService(config.AssistantConfig{BaseURL: srv.URL})

	_, err := svc.Chat([]AIChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
}
