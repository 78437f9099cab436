package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avdonin/skybooking/config"
	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/kafka"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	feedSize   int64
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration, feedSize int) *RedisCache {
	if feedSize <= 0 {
		feedSize = 100
	}
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
		feedSize:   int64(feedSize),
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// RecordTransition appends a booking event to the recent-transitions feed
// and bumps the per-status counter backing the admin dashboard.
func (c *RedisCache) RecordTransition(ctx context.Context, event kafka.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, feedKey(), payload)
	pipe.LTrim(ctx, feedKey(), 0, c.feedSize-1)
	pipe.Incr(ctx, statusCountKey(event.Status))
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) RecentTransitions(ctx context.Context, n int64) ([]kafka.BookingEvent, error) {
	raw, err := c.client.LRange(ctx, feedKey(), 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	events := make([]kafka.BookingEvent, 0, len(raw))
	for _, item := range raw {
		var event kafka.BookingEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (c *RedisCache) StatusCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(domain.AllBookingStatuses))
	for _, status := range domain.AllBookingStatuses {
		n, err := c.client.Get(ctx, statusCountKey(string(status))).Int64()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		counts[string(status)] = n
	}
	return counts, nil
}

func flightsKey() string {
	return "cache:flights"
}

func feedKey() string {
	return "feed:transitions"
}

func statusCountKey(status string) string {
	return fmt.Sprintf("count:status:%s", status)
}
