package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/slauto/shopbooking/config"
	"github.com/slauto/shopbooking/internal/bootstrap"
	"github.com/slauto/shopbooking/internal/kafka"
	"github.com/slauto/shopbooking/internal/lock"
	"github.com/slauto/shopbooking/internal/repository"
	"github.com/slauto/shopbooking/internal/service/bookings"
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

	// Single-process deployments serialize appends with an in-process mutex;
	// point REDIS_ADDR at a shared instance when several processes write the
	// same store file.
	var locker lock.Locker = lock.NewMutex()
	if cfg.Redis.Addr != "" {
		redisLock := lock.NewRedisLock(cfg.Redis, "lock:bookings:append")
		defer redisLock.Close()
		locker = redisLock
	}

	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
	}

	bookingRepo := repository.NewBookingRepository(cfg.Store.Path, locker)
	bookingService := bookings.NewBookingService(
		bookingRepo,
		producer,
		cfg.Kafka.BookingTopic,
		bookings.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
