package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/altavia/voyager/api"
	"github.com/altavia/voyager/config"
	"github.com/altavia/voyager/internal/bootstrap"
	"github.com/altavia/voyager/internal/cache"
	"github.com/altavia/voyager/internal/ingest"
	"github.com/altavia/voyager/internal/kafka"
	"github.com/altavia/voyager/internal/registry"
	"github.com/altavia/voyager/internal/search"
	"github.com/altavia/voyager/internal/service/booking"
	"github.com/altavia/voyager/internal/service/planner"
	"github.com/altavia/voyager/internal/store"
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

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recordStore, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open record store", zap.Error(err))
	}
	defer cleanup()

	flightRegistry := registry.NewFlightRegistry()
	roster := registry.NewUserRoster()

	snap, err := recordStore.LoadAll(ctx)
	if err != nil {
		logger.Fatal("load snapshot", zap.Error(err))
	}
	if err := store.Restore(snap, flightRegistry, roster); err != nil {
		logger.Fatal("restore snapshot", zap.Error(err))
	}
	logger.Info("snapshot loaded", zap.Int("flights", flightRegistry.Len()), zap.Int("users", roster.Len()))

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Search.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	policy := search.Policy{
		MinLayoverHours: cfg.Search.MinLayoverHours,
		MaxLayoverHours: cfg.Search.MaxLayoverHours,
	}

	plannerService := planner.NewPlannerService(flightRegistry, policy, redisCache, logger)
	ledgerService := booking.NewLedgerService(
		flightRegistry,
		roster,
		recordStore,
		logger,
		booking.WithCache(redisCache),
		booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
	)
	ingestor := ingest.NewIngestor(flightRegistry, roster, recordStore, logger)

	handlers := bootstrap.Handlers{
		Flights:     api.NewFlightHandler(plannerService),
		Itineraries: api.NewItineraryHandler(plannerService, roster),
		Bookings:    api.NewBookingHandler(ledgerService),
		Admin:       api.NewAdminHandler(ingestor, roster),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.RecordStore, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		return store.NewPGStore(pool), pool.Close, nil
	default:
		return store.NewFileStore(cfg.Store.Path), func() {}, nil
	}
}
