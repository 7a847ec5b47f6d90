// Package ai wraps the hosted inference services the app delegates to:
// Groq for chat completions and HuggingFace for sentiment scoring.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

const chatModel = "llama-3.1-70b-versatile"

// islamicSystemPrompt frames every completion request.
const islamicSystemPrompt = `You are an Islamic AI Assistant with deep knowledge of Islam. You provide accurate, respectful, and well-sourced Islamic guidance.

CORE PRINCIPLES:
- Always base answers on Quran, authentic Hadith, and scholarly consensus
- Provide references when possible (Quran verses, Hadith collections)
- Be respectful of different Islamic schools of thought (madhabs)
- Acknowledge when questions require consulting local scholars
- Use Arabic terms with English translations when appropriate
- Be compassionate and understanding in addressing personal struggles

RESPONSE FORMAT:
- Provide direct, helpful answers
- Include relevant Quranic verses or Hadith when applicable
- Explain context and wisdom behind rulings
- Suggest additional resources when helpful
- Use respectful Islamic greetings when appropriate`

// ChatClient calls the Groq OpenAI-compatible completions endpoint.
type ChatClient struct {
	httpClient *http.Client
	apiKey     string
	// BaseURL is exported for testing with httptest.
	BaseURL string
}

func NewChatClient(apiKey string) *ChatClient {
	return &ChatClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		BaseURL:    defaultGroqURL,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Ask sends one user question (with optional prior transcript for
// context) and returns the assistant's reply.
func (c *ChatClient) Ask(ctx context.Context, history []Turn, question string) (string, error) {
	messages := []chatMessage{{Role: "system", Content: islamicSystemPrompt}}
	for _, t := range history {
		messages = append(messages, chatMessage{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: question})

	body, err := json.Marshal(chatRequest{
		Model:       chatModel,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI service error: status %d: %s", resp.StatusCode, string(raw))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode AI response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// Turn is one prior exchange entry passed back for context.
type Turn struct {
	Role    string
	Content string
}
