package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// ScheduleCache caches resolved prayer schedules in Redis. Every
// failure is treated as a cache miss so the provider path still works
// when Redis is down.
type ScheduleCache struct{}

func NewScheduleCache() *ScheduleCache { return &ScheduleCache{} }

func (c *ScheduleCache) GetSchedule(ctx context.Context, key string) (*model.PrayerSchedule, bool) {
	if Rdb == nil {
		return nil, false
	}
	raw, err := Rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var schedule model.PrayerSchedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("corrupt schedule cache entry")
		return nil, false
	}
	return &schedule, true
}

func (c *ScheduleCache) SetSchedule(ctx context.Context, key string, schedule *model.PrayerSchedule, ttl time.Duration) {
	if Rdb == nil {
		return
	}
	raw, err := json.Marshal(schedule)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to marshal schedule for cache")
		return
	}
	if err := Rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache schedule")
	}
}
