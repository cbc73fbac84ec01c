package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/busbooking/config"
	"github.com/Domenick1991/busbooking/internal/auth"
	"github.com/Domenick1991/busbooking/internal/bootstrap"
	"github.com/Domenick1991/busbooking/internal/cache"
	"github.com/Domenick1991/busbooking/internal/kafka"
	"github.com/Domenick1991/busbooking/internal/logger"
	"github.com/Domenick1991/busbooking/internal/repository"
	"github.com/Domenick1991/busbooking/internal/service/booking"
	"github.com/Domenick1991/busbooking/internal/service/trips"
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

	zlog, err := logger.New("busbooking")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.TripCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tripRepo := repository.NewTripRepository(cfg.Services.DirectoryURL, cfg.Services.Timeout())
	bookingRepo := repository.NewBookingRepository(cfg.Services.SubmissionURL, cfg.Services.Timeout())

	tripService := trips.NewTripService(tripRepo, redisCache)
	manager := booking.NewManager(
		tripService,
		bookingRepo,
		producer,
		cfg.Kafka.BookingTopic,
		zlog,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithSessionTTL(time.Duration(cfg.Booking.SessionTTLMinutes)*time.Minute),
	)

	deps := bootstrap.Deps{
		Trips:    tripService,
		Manager:  manager,
		Bookings: bookingRepo,
		Auth:     auth.NewProvider(cfg.Auth.JWTSecret),
		Log:      zlog,
	}

	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
