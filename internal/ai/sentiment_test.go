package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newSentimentTest(handler http.HandlerFunc) (*SentimentClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewSentimentClient("test-key")
	client.BaseURL = server.URL
	return client, server
}

func TestAnalyzePicksTopScore(t *testing.T) {
	client, server := newSentimentTest(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`[[
			{"label": "LABEL_0", "score": 0.1},
			{"label": "LABEL_2", "score": 0.8534},
			{"label": "LABEL_1", "score": 0.05}
		]]`))
	})
	defer server.Close()

	got := client.Analyze(context.Background(), "this is wonderful")
	assert.Equal(t, "positive", got.Label)
	assert.Equal(t, 0.85, got.Score, "score is rounded to two decimals")
}

func TestAnalyzeNegativeLabel(t *testing.T) {
	client, server := newSentimentTest(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"label": "LABEL_0", "score": 0.91}]]`))
	})
	defer server.Close()

	got := client.Analyze(context.Background(), "this is terrible")
	assert.Equal(t, "negative", got.Label)
}

func TestAnalyzeDegradesOnServerError(t *testing.T) {
	client, server := newSentimentTest(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	assert.Equal(t, NeutralSentiment, client.Analyze(context.Background(), "anything"))
}

func TestAnalyzeDegradesOnMalformedBody(t *testing.T) {
	client, server := newSentimentTest(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	})
	defer server.Close()

	assert.Equal(t, NeutralSentiment, client.Analyze(context.Background(), "anything"))
}

func TestAnalyzeDegradesWhenUnreachable(t *testing.T) {
	client, server := newSentimentTest(func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	assert.Equal(t, NeutralSentiment, client.Analyze(context.Background(), "anything"))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "positive", normalizeLabel("LABEL_2"))
	assert.Equal(t, "negative", normalizeLabel("label_0"))
	assert.Equal(t, "neutral", normalizeLabel("LABEL_1"))
	assert.Equal(t, "neutral", normalizeLabel("whatever"))
}
