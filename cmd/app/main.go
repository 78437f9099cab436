package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdonin/skybooking/api"
	"github.com/avdonin/skybooking/config"
	"github.com/avdonin/skybooking/internal/bootstrap"
	"github.com/avdonin/skybooking/internal/cache"
	"github.com/avdonin/skybooking/internal/email"
	"github.com/avdonin/skybooking/internal/kafka"
	"github.com/avdonin/skybooking/internal/receipt"
	"github.com/avdonin/skybooking/internal/repository"
	"github.com/avdonin/skybooking/internal/service/booking"
	"github.com/avdonin/skybooking/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second, cfg.Booking.FeedSize)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	accountRepo := repository.NewPaymentAccountRepository(pool)

	mailer := email.NewSender(cfg.SMTP)
	receipts := receipt.NewGenerator(cfg.Storage.ReceiptsDir)
	dispatcher := booking.NewDispatcher(bookingRepo, flightRepo, accountRepo, mailer, receipts, producer, cfg.Kafka.BookingEventsTopic)

	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		dispatcher,
		booking.WithCreatedEventsTopic(producer, cfg.Kafka.BookingEventsTopic),
	)
	flightService := flights.NewFlightService(flightRepo, redisCache)

	bookingHandler := api.NewBookingHandler(bookingService, cfg.Storage.UploadsDir)
	adminHandler := api.NewAdminHandler(bookingService, redisCache)
	flightHandler := api.NewFlightHandler(flightService)

	if err := bootstrap.Run(ctx, cfg, bookingHandler, adminHandler, flightHandler); err != nil {
		log.Fatalf("server error: %v", err)
	}

	// Let in-flight side effects (emails, receipts) drain before exit.
	dispatcher.Wait()
}
