package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/busbooking/config"
	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client  *redis.Client
	tripTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, tripTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		tripTTL: tripTTL,
	}
}

func (c *RedisCache) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	data, err := c.client.Get(ctx, tripKey(tripID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var trip domain.Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *RedisCache) SetTrip(ctx context.Context, trip *domain.Trip) error {
	payload, err := json.Marshal(trip)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tripKey(trip.ID), payload, c.tripTTL).Err()
}

func (c *RedisCache) InvalidateTrip(ctx context.Context, tripID string) error {
	return c.client.Del(ctx, tripKey(tripID)).Err()
}

func tripKey(tripID string) string {
	return fmt.Sprintf("cache:trip:%s", tripID)
}
