package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Dashboard cache keys
const (
	DashboardStatsKey = "dashboard:stats"
	statsTTL          = 60 * time.Second
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: when Redis
// is unreachable the dashboard falls back to direct queries.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetDashboardStats returns cached dashboard stats, if present.
func GetDashboardStats(ctx context.Context, out interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, DashboardStatsKey).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// SetDashboardStats caches dashboard stats for a short window.
func SetDashboardStats(ctx context.Context, stats interface{}) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	client.Set(ctx, DashboardStatsKey, raw, statsTTL)
}

// InvalidateDashboard drops the cached stats after any job/catalog write.
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardStatsKey)
}
