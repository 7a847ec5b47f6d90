package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskBuildsConversation(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "Wa alaykum assalam"}}]}`))
	}))
	defer server.Close()

	client := NewChatClient("key")
	client.BaseURL = server.URL

	history := []Turn{
		{Role: "user", Content: "Assalamu alaykum"},
		{Role: "assistant", Content: "Wa alaykum assalam, how can I help?"},
	}
	reply, err := client.Ask(context.Background(), history, "What are the pillars of Islam?")
	require.NoError(t, err)
	assert.Equal(t, "Wa alaykum assalam", reply)

	assert.Equal(t, chatModel, got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)

	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "What are the pillars of Islam?", got.Messages[3].Content)
}

func TestAskServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewChatClient("key")
	client.BaseURL = server.URL

	_, err := client.Ask(context.Background(), nil, "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAskEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewChatClient("key")
	client.BaseURL = server.URL

	_, err := client.Ask(context.Background(), nil, "question")
	assert.Error(t, err)
}
