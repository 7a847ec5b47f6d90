package packets

import "github.com/Noor-Labs-LLC/minbar/internal/model"

// SendMessageResponse carries both halves of one exchange so the
// client can append them without refetching the transcript.
type SendMessageResponse struct {
	UserMessage      model.ChatMessage `json:"user_message"`
	AssistantMessage model.ChatMessage `json:"assistant_message"`
}

type SessionListResponse struct {
	Sessions []model.ChatSession `json:"sessions"`
}

type MessageListResponse struct {
	Messages []model.ChatMessage `json:"messages"`
}
