package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultSentimentURL = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment-latest"

// Sentiment is the outcome of scoring a piece of text. Score is the
// winning label's confidence in [0, 1].
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NeutralSentiment is the recovery value when scoring fails; the
// signup flow never blocks on the sentiment service.
var NeutralSentiment = Sentiment{Label: "neutral", Score: 0.5}

// SentimentClient calls the HuggingFace inference API.
type SentimentClient struct {
	httpClient *http.Client
	apiKey     string
	// BaseURL is exported for testing with httptest.
	BaseURL string
}

func NewSentimentClient(apiKey string) *SentimentClient {
	return &SentimentClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		BaseURL:    defaultSentimentURL,
	}
}

type sentimentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyze scores text and returns the highest-confidence label,
// normalized to {positive, negative, neutral}. Any failure degrades to
// NeutralSentiment.
func (c *SentimentClient) Analyze(ctx context.Context, text string) Sentiment {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return NeutralSentiment
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return NeutralSentiment
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("sentiment analysis failed, defaulting to neutral")
		return NeutralSentiment
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("sentiment API error, defaulting to neutral")
		return NeutralSentiment
	}

	var result [][]sentimentScore
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || len(result) == 0 || len(result[0]) == 0 {
		return NeutralSentiment
	}

	top := result[0][0]
	for _, s := range result[0][1:] {
		if s.Score > top.Score {
			top = s
		}
	}

	return Sentiment{
		Label: normalizeLabel(top.Label),
		Score: math.Round(top.Score*100) / 100,
	}
}

// normalizeLabel maps the model's label scheme onto
// {positive, negative, neutral}.
func normalizeLabel(label string) string {
	switch label {
	case "positive", "LABEL_2", "label_2":
		return "positive"
	case "negative", "LABEL_0", "label_0":
		return "negative"
	default:
		return "neutral"
	}
}
