package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const profileKeyPrefix = "profile:%d"

// ProfileTTL bounds staleness of cached profile aggregates.
const ProfileTTL = 5 * time.Minute

// ProfileKey returns the cache key for a user's profile aggregate.
func ProfileKey(userID uint) string {
	return fmt.Sprintf(profileKeyPrefix, userID)
}

// InvalidateProfile drops the cached aggregate for a user after a write.
func InvalidateProfile(ctx context.Context, client *redis.Client, userID uint) {
	if client != nil {
		client.Del(ctx, ProfileKey(userID))
	}
}
