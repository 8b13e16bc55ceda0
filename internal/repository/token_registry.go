package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenRegistry remembers the push token issued to each installation so a
// restarted app gets the same address back.
type TokenRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenRegistry builds a registry. A zero ttl keeps tokens forever.
func NewTokenRegistry(client *redis.Client, ttl time.Duration) *TokenRegistry {
	return &TokenRegistry{
		client: client,
		ttl:    ttl,
	}
}

func (r *TokenRegistry) Close() error {
	return r.client.Close()
}

// Register stores candidate unless a token already exists, and returns the
// token that is registered afterwards.
func (r *TokenRegistry) Register(ctx context.Context, projectID, installationID, candidate string) (string, error) {
	key := TokenKey(projectID, installationID)
	created, err := r.client.SetNX(ctx, key, candidate, r.ttl).Result()
	if err != nil {
		return "", err
	}
	if created {
		return candidate, nil
	}
	existing, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SetNX and Get
		return candidate, r.client.Set(ctx, key, candidate, r.ttl).Err()
	}
	return existing, err
}

// TokenKey is the Redis key holding the token of one installation.
func TokenKey(projectID, installationID string) string {
	return "push:token:" + projectID + ":" + installationID
}
