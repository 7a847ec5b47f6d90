package endpoints

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/ai"
	"github.com/Noor-Labs-LLC/minbar/internal/db"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api/chat/packets"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

// DefaultSessionTitle marks a freshly created session; the session
// list hides sessions whose title never moved past it.
const DefaultSessionTitle = "New Islamic Chat"

const titleMaxRunes = 50

// ChatModule mounts the authenticated assistant endpoints.
func ChatModule(store db.Store, assistant *ai.ChatClient) api.Module {
	ctl := &ChatController{store: store, assistant: assistant}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/chat/sessions", ctl.createSession)
		c.GET("/chat/sessions", ctl.listSessions)
		c.DELETE("/chat/sessions/:id", ctl.deleteSession)
		c.GET("/chat/sessions/:id/messages", ctl.listMessages)
		c.POST("/chat/sessions/:id/messages", ctl.sendMessage)
	})
}

type ChatController struct {
	store     db.Store
	assistant *ai.ChatClient
}

// POST /api/chat/sessions
func (cc *ChatController) createSession(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		title = DefaultSessionTitle
	}

	session, err := cc.store.CreateChatSession(user.ID, title)
	if err != nil {
		log.Error().Err(err).Msg("failed to create chat session")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create session"}
	}
	return session, nil
}

// GET /api/chat/sessions
func (cc *ChatController) listSessions(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sessions, err := cc.store.ListChatSessions(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list chat sessions")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list sessions"}
	}
	return packets.SessionListResponse{Sessions: sessions}, nil
}

// DELETE /api/chat/sessions/:id
func (cc *ChatController) deleteSession(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := sessionID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := cc.store.DeleteChatSession(id, user.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "session not found"}
	}
	return gin.H{"deleted": id}, nil
}

// GET /api/chat/sessions/:id/messages
func (cc *ChatController) listMessages(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	session, apiErr := cc.ownedSession(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	messages, err := cc.store.ListChatMessages(session.ID)
	if err != nil {
		log.Error().Err(err).Int("session_id", session.ID).Msg("failed to list chat messages")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list messages"}
	}
	return packets.MessageListResponse{Messages: messages}, nil
}

// POST /api/chat/sessions/:id/messages
//
// Persists the user's question, asks the assistant with the prior
// transcript as context, persists the reply, and returns both. The
// first question in a session also becomes the session title.
func (cc *ChatController) sendMessage(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	session, apiErr := cc.ownedSession(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.SendMessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	question := strings.TrimSpace(request.Content)
	if question == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "content must not be empty"}
	}

	prior, err := cc.store.ListChatMessages(session.ID)
	if err != nil {
		log.Error().Err(err).Int("session_id", session.ID).Msg("failed to load transcript")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load transcript"}
	}

	userMsg, err := cc.store.CreateChatMessage(session.ID, user.ID, "user", question)
	if err != nil {
		log.Error().Err(err).Int("session_id", session.ID).Msg("failed to persist user message")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save message"}
	}

	if session.Title == DefaultSessionTitle && len(prior) == 0 {
		if err := cc.store.UpdateChatSessionTitle(session.ID, deriveTitle(question)); err != nil {
			log.Warn().Err(err).Int("session_id", session.ID).Msg("failed to retitle session")
		}
	}

	history := make([]ai.Turn, 0, len(prior))
	for _, m := range prior {
		history = append(history, ai.Turn{Role: m.Role, Content: m.Content})
	}

	reply, err := cc.assistant.Ask(ctx.Request.Context(), history, question)
	if err != nil {
		log.Error().Err(err).Int("session_id", session.ID).Msg("assistant call failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "assistant is unavailable"}
	}

	assistantMsg, err := cc.store.CreateChatMessage(session.ID, user.ID, "assistant", reply)
	if err != nil {
		log.Error().Err(err).Int("session_id", session.ID).Msg("failed to persist assistant message")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save reply"}
	}

	return packets.SendMessageResponse{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

func (cc *ChatController) ownedSession(ctx *gin.Context, user *model.User) (*model.ChatSession, *api.APIError) {
	id, apiErr := sessionID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	session, err := cc.store.GetChatSessionByID(id)
	if err != nil || session == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "session not found"}
	}
	if session.UserID != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "session belongs to another user"}
	}
	return session, nil
}

func sessionID(ctx *gin.Context) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, &api.APIError{Code: http.StatusBadRequest, Message: "invalid session id"}
	}
	return id, nil
}

// deriveTitle truncates the first question into a sidebar label.
func deriveTitle(question string) string {
	title := strings.Join(strings.Fields(question), " ")
	if utf8.RuneCountInString(title) <= titleMaxRunes {
		return title
	}
	runes := []rune(title)
	return strings.TrimSpace(string(runes[:titleMaxRunes])) + "..."
}
