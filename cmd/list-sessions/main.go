package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/charforge/charforge/internal/domain/character"
)

func main() {
	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	// Find all build session keys
	sessionKeys, err := client.Keys(ctx, "charsession:*").Result()
	if err != nil {
		log.Fatalf("Failed to get session keys: %v", err)
	}

	fmt.Printf("Found %d sessions:\n", len(sessionKeys))
	for _, key := range sessionKeys {
		data, getErr := client.Get(ctx, key).Result()
		if getErr != nil {
			fmt.Printf("  %s: ERROR - %v\n", key, getErr)
			continue
		}

		var snapshot character.SessionSnapshot
		if jsonErr := json.Unmarshal([]byte(data), &snapshot); jsonErr != nil {
			fmt.Printf("  %s: %d bytes (unreadable: %v)\n", key, len(data), jsonErr)
			continue
		}

		fmt.Printf("  %s: owner=%s name=%q status=%s race=%s class=%s updated=%s\n",
			key, snapshot.OwnerID, snapshot.Name, snapshot.Status,
			snapshot.RaceKey, snapshot.ClassKey,
			snapshot.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}
