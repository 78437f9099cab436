package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdonin/skybooking/config"
	"github.com/avdonin/skybooking/internal/cache"
	"github.com/avdonin/skybooking/internal/kafka"
)

// The feed worker consumes booking events and maintains the Redis
// recent-transitions feed backing the admin dashboard.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second, cfg.Booking.FeedSize)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	err = consumer.ConsumeEvents(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		if event.Type != "status_changed" {
			return nil
		}
		if err := redisCache.RecordTransition(ctx, event); err != nil {
			log.Printf("record transition for booking %d: %v", event.BookingID, err)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}
