package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	config "github.com/knockandknow/backend/configs"
	"github.com/knockandknow/backend/services"
	"github.com/redis/go-redis/v9"
)

const scoreboardTTL = 5 * time.Minute

// ScoreboardCache keeps ranked scoreboard snapshots in Redis so the review
// views and the websocket feed do not hit Postgres on every refresh. A nil
// cache is valid and disables caching entirely.
type ScoreboardCache struct {
	client *redis.Client
}

// InitScoreboardCache connects to Redis when REDIS_URL is configured and
// returns nil otherwise; callers treat a nil cache as a no-op.
func InitScoreboardCache() *ScoreboardCache {
	redisURL := config.Config("REDIS_URL")
	if redisURL == "" {
		log.Println("⚠️ REDIS_URL not set, scoreboard caching disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("🔥 Invalid REDIS_URL, scoreboard caching disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("🔥 Redis unreachable, scoreboard caching disabled: %v", err)
		return nil
	}

	log.Println("✅ Scoreboard cache connected")
	return &ScoreboardCache{client: client}
}

// NewScoreboardCache wraps an existing client; used by tests.
func NewScoreboardCache(client *redis.Client) *ScoreboardCache {
	return &ScoreboardCache{client: client}
}

func (c *ScoreboardCache) Get(ctx context.Context, quizID string) ([]services.RankedParticipant, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, c.key(quizID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Error reading scoreboard cache for quiz %s: %v", quizID, err)
		}
		return nil, false
	}

	var ranked []services.RankedParticipant
	if err := json.Unmarshal(payload, &ranked); err != nil {
		log.Printf("Error decoding scoreboard cache for quiz %s: %v", quizID, err)
		return nil, false
	}
	return ranked, true
}

func (c *ScoreboardCache) Set(ctx context.Context, quizID string, ranked []services.RankedParticipant) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(ranked)
	if err != nil {
		log.Printf("Error encoding scoreboard cache for quiz %s: %v", quizID, err)
		return
	}
	if err := c.client.Set(ctx, c.key(quizID), payload, scoreboardTTL).Err(); err != nil {
		log.Printf("Error writing scoreboard cache for quiz %s: %v", quizID, err)
	}
}

func (c *ScoreboardCache) Invalidate(ctx context.Context, quizID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(quizID)).Err(); err != nil {
		log.Printf("Error invalidating scoreboard cache for quiz %s: %v", quizID, err)
	}
}

func (c *ScoreboardCache) key(quizID string) string {
	return "quiz:" + quizID + ":scoreboard"
}
