package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/ai"
	"github.com/Noor-Labs-LLC/minbar/internal/aladhan"
	"github.com/Noor-Labs-LLC/minbar/internal/announce"
	"github.com/Noor-Labs-LLC/minbar/internal/db"
	"github.com/Noor-Labs-LLC/minbar/internal/geocode"
	"github.com/Noor-Labs-LLC/minbar/internal/mail"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
	"github.com/Noor-Labs-LLC/minbar/internal/prayer"
	"github.com/Noor-Labs-LLC/minbar/internal/redis"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	env := LoadEnvironment()
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}
	store := db.NewStore(db.DB)

	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	adhan := aladhan.NewClient()
	fetcher := prayer.NewFetcher(adhan, redis.NewScheduleCache())
	locator := geocode.NewResolver()

	assistant := ai.NewChatClient(env.GroqAPIKey)
	sentiment := ai.NewSentimentClient(env.HuggingFaceAPIKey)
	var sender mail.Sender = mail.NewResendClient(env.ResendAPIKey, env.NewsletterFrom)

	// Background schedule resolver: keeps today's schedule warm and
	// re-projects the next prayer every minute.
	resolver := prayer.NewResolver(fetcher, locator, model.CalculationSettings{MethodID: 2, SchoolID: prayer.SchoolStandard})

	if env.MQTTBroker != "" {
		announcer, err := announce.NewAnnouncer(env.MQTTBroker, "minbar-server")
		if err != nil {
			log.Error().Err(err).Msg("mqtt broker unavailable, athan announcements disabled")
		} else {
			defer announcer.Close()
			resolver.OnNextPrayer(func(next model.NextPrayerProjection) {
				schedule, _ := resolver.Current()
				location := ""
				if schedule != nil {
					location = schedule.Location.Label
				}
				if err := announcer.AnnounceNext(location, next); err != nil {
					log.Error().Err(err).Msg("athan announcement failed")
				}
			})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, fallback, err := resolver.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("initial schedule fetch failed, will retry on tick")
	} else if fallback {
		log.Warn().Msg("geolocation unavailable, serving Mecca schedule")
	}
	cancel()

	resolver.Start(time.Minute)
	defer resolver.Stop()

	if env.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, adhan, fetcher, locator, assistant, sentiment, sender)

	go func() {
		log.Info().Str("address", env.ServerAddress).Msg("listening")
		if err := r.Run(env.ServerAddress); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
}
