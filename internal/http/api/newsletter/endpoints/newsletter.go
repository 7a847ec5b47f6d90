package endpoints

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/ai"
	"github.com/Noor-Labs-LLC/minbar/internal/db"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api/newsletter/packets"
	"github.com/Noor-Labs-LLC/minbar/internal/mail"
	"github.com/Noor-Labs-LLC/minbar/internal/newsletter"
)

// NewsletterModule mounts the public newsletter signup endpoint.
func NewsletterModule(store db.Store, sentiment *ai.SentimentClient, sender mail.Sender) api.Module {
	ctl := &SignupController{store: store, sentiment: sentiment, sender: sender}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/newsletter/signup", ctl.signup)
	})
}

type SignupController struct {
	store     db.Store
	sentiment *ai.SentimentClient
	sender    mail.Sender
}

// POST /api/newsletter/signup
//
// The subscription reason is run through sentiment analysis and tag
// extraction, then the welcome email is composed to match the tone.
// Email delivery failure does not undo the signup.
func (s *SignupController) signup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if existing, _ := s.store.GetSubscriberByEmail(email); existing != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already subscribed"}
	}

	mood := s.sentiment.Analyze(ctx.Request.Context(), request.Reason)
	tags := newsletter.ExtractTags(request.Reason)

	id, err := s.store.CreateSubscriber(request.Name, email, request.Reason, mood.Label, mood.Score, tags)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to save subscriber")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save subscription"}
	}

	sent := false
	subject, html, err := newsletter.ComposeWelcome(request.Name, mood.Label, request.Reason)
	if err != nil {
		log.Error().Err(err).Msg("failed to compose welcome email")
	} else if err := s.sender.Send(ctx.Request.Context(), email, subject, html); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to send welcome email")
	} else {
		sent = true
	}

	return packets.SignupResponse{
		SubscriberID: id,
		Sentiment:    mood.Label,
		Score:        mood.Score,
		Tags:         tags,
		WelcomeSent:  sent,
	}, nil
}
