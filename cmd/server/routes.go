package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Noor-Labs-LLC/minbar/internal/ai"
	"github.com/Noor-Labs-LLC/minbar/internal/aladhan"
	"github.com/Noor-Labs-LLC/minbar/internal/db"
	"github.com/Noor-Labs-LLC/minbar/internal/geocode"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	authapi "github.com/Noor-Labs-LLC/minbar/internal/http/api/auth/endpoints"
	calendarapi "github.com/Noor-Labs-LLC/minbar/internal/http/api/calendar/endpoints"
	chatapi "github.com/Noor-Labs-LLC/minbar/internal/http/api/chat/endpoints"
	knowledgeapi "github.com/Noor-Labs-LLC/minbar/internal/http/api/knowledge/endpoints"
	newsletterapi "github.com/Noor-Labs-LLC/minbar/internal/http/api/newsletter/endpoints"
	prayerapi "github.com/Noor-Labs-LLC/minbar/internal/http/api/prayer/endpoints"
	verseapi "github.com/Noor-Labs-LLC/minbar/internal/http/api/verse/endpoints"
	"github.com/Noor-Labs-LLC/minbar/internal/mail"
	"github.com/Noor-Labs-LLC/minbar/internal/prayer"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	adhan *aladhan.Client,
	fetcher *prayer.Fetcher,
	locator *geocode.Resolver,
	assistant *ai.ChatClient,
	sentiment *ai.SentimentClient,
	sender mail.Sender,
) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
		prayerapi.PrayerModule(fetcher, locator),
		calendarapi.CalendarModule(adhan),
		verseapi.VerseModule(),
		knowledgeapi.KnowledgeModule(store),
		newsletterapi.NewsletterModule(store, sentiment, sender),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		authapi.AuthSessionModule(env.SecretKey, store),
		chatapi.ChatModule(store, assistant),
	)
}
