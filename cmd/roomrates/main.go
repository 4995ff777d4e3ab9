package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"roomrates/internal/app/commands"
	"roomrates/internal/app/dto"
	availabilityapp "roomrates/internal/app/handlers/availability"
	listingapp "roomrates/internal/app/handlers/listings"
	pricingapp "roomrates/internal/app/handlers/pricing"
	"roomrates/internal/app/handlers/support"
	"roomrates/internal/app/middleware"
	"roomrates/internal/app/outbox"
	"roomrates/internal/app/policies"
	"roomrates/internal/app/queries"
	"roomrates/internal/app/uow"
	"roomrates/internal/infra/broker/kafka"
	rediscache "roomrates/internal/infra/cache/redis"
	"roomrates/internal/infra/config"
	mongostore "roomrates/internal/infra/db/mongo"
	"roomrates/internal/infra/fixtures"
	ginserver "roomrates/internal/infra/http/gin"
	"roomrates/internal/infra/obs"
	durableoutbox "roomrates/internal/infra/outbox"
	"roomrates/internal/infra/storage/memory"
)

func main() {
	dotenvErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	logger := obs.NewLogger(cfg.Env)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if dotenvErr != nil && !errors.Is(dotenvErr, os.ErrNotExist) {
		logger.Warn(".env not loaded", "error", dotenvErr)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	fixturesPath := cfg.FixturesPath
	if fixturesPath == "" {
		fixturesPath = fixtures.DefaultPath()
	}
	if err := app.seed(ctx, fixturesPath, logger); err != nil {
		logger.Warn("fixtures load failed", "error", err, "path", fixturesPath)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Probes: app.probes}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode, "kafka", cfg.KafkaEnabled(), "quote_cache", cfg.RedisEnabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	probes   map[string]obs.Probe
	stores   fixtures.Stores
	units    uow.UoWFactory
	box      *memory.Outbox
	events   outbox.Outbox
	workers  sync.WaitGroup
	closers  []func(context.Context) error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{probes: map[string]obs.Probe{}}

	var producer memory.Producer
	if cfg.KafkaEnabled() {
		kp, err := kafka.NewProducer(cfg.KafkaBrokers, "roomrates", nil)
		if err != nil {
			return nil, err
		}
		kp.Topic = cfg.KafkaTopic
		producer = kp
		app.closers = append(app.closers, func(context.Context) error { return kp.Close() })
	}

	if err := app.openStores(ctx, cfg, producer, logger); err != nil {
		app.close(logger)
		return nil, err
	}

	var cache policies.QuoteCache
	if cfg.RedisEnabled() {
		client := rediscache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cache = rediscache.NewQuoteCache(client, cfg.QuoteCacheTTL)
		app.probes["redis"] = rediscache.Ping(client)
		app.closers = append(app.closers, func(context.Context) error { return client.Close() })
	}

	snapshots := support.Snapshots{Rooms: app.stores.Rooms, Blocks: app.stores.Blocks, Rates: app.stores.Rates}
	encoder := outbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	queryBus := queries.NewInMemoryBus()

	queries.RegisterHandler[availabilityapp.EvaluateRoomQuery, dto.RoomAvailability](queryBus, &availabilityapp.EvaluateRoomHandler{
		Snapshots: snapshots,
		Cache:     cache,
		Logger:    logger,
	})
	queries.RegisterHandler[availabilityapp.GetCalendarQuery, dto.RoomCalendar](queryBus, &availabilityapp.GetCalendarHandler{
		Snapshots: snapshots,
		Logger:    logger,
	})
	queries.RegisterHandler[listingapp.PropertyAvailabilityQuery, dto.PropertyAvailability](queryBus, &listingapp.PropertyAvailabilityHandler{
		Snapshots: snapshots,
		Logger:    logger,
	})
	queries.RegisterHandler[listingapp.SearchPropertiesQuery, dto.PropertyCatalog](queryBus, &listingapp.SearchPropertiesHandler{
		Snapshots: snapshots,
		Logger:    logger,
	})
	blockHandlers := &availabilityapp.BlockHandlers{
		Rooms:   app.stores.Rooms,
		Blocks:  app.stores.Blocks,
		Units:   app.units,
		Encoder: encoder,
	}
	blockHandlers.Register(commandBus, queryBus)
	rateHandlers := &pricingapp.RateHandlers{
		Rooms:   app.stores.Rooms,
		Rates:   app.stores.Rates,
		Units:   app.units,
		Encoder: encoder,
	}
	rateHandlers.Register(commandBus, queryBus)

	// Flush runs after the unit commits.
	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Logging(logger),
		middleware.OutboxFlush(app.events),
		middleware.Transaction(app.units, nil),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus, middleware.QueryLogging(logger))
	logger.Debug("buses ready", "queries", queryBus.Keys())

	app.handlers = ginserver.Handlers{
		Room:        ginserver.RoomHandler{Queries: queryBusWithMiddleware, Logger: logger},
		Maintenance: ginserver.MaintenanceHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Logger: logger},
		Property:    ginserver.PropertyHandler{Queries: queryBusWithMiddleware, Logger: logger},
	}
	return app, nil
}

// openStores picks the repositories, the outbox and the unit-of-work factory
// for the storage mode. Memory mode buffers events and flushes them after each
// command. Mongo mode writes them to the outbox collection in the command's
// transaction and publishes them from a background worker.
func (a *application) openStores(ctx context.Context, cfg config.Config, producer memory.Producer, logger *slog.Logger) error {
	if cfg.StorageMode != config.StorageMongo {
		roomRepo := memory.NewRoomRepository()
		blockRepo := memory.NewBlockRepository()
		rateRepo := memory.NewRateRepository()
		a.box = memory.NewOutbox(producer, logger, cfg.TopicPrefix)
		a.box.Source = cfg.EventSource
		a.events = a.box
		a.stores = fixtures.Stores{Rooms: roomRepo, Blocks: blockRepo, Rates: rateRepo}
		a.units = memory.Factory{Rooms: roomRepo, Blocks: blockRepo, Rates: rateRepo, Outbox: a.box}
		return nil
	}

	client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, client.Close)
	a.probes["mongo"] = client.Ping
	if err := client.EnsureIndexes(ctx); err != nil {
		return err
	}
	counters := mongostore.NewCounters(client.DB)
	roomRepo := mongostore.NewRoomRepository(client.DB)
	blockRepo := mongostore.NewBlockRepository(client.DB, counters)
	blockRepo.Logger = logger
	rateRepo := mongostore.NewRateRepository(client.DB, counters)
	rateRepo.Logger = logger
	a.stores = fixtures.Stores{Rooms: roomRepo, Blocks: blockRepo, Rates: rateRepo}

	store := durableoutbox.NewStore(client.DB)
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	a.events = store
	a.units = mongostore.Factory{
		DB:         client.DB,
		RoomsRepo:  roomRepo,
		BlocksRepo: blockRepo,
		RatesRepo:  rateRepo,
		Outbox:     store,
	}

	if producer == nil {
		producer = durableoutbox.LogProducer{Logger: logger}
	}
	worker := &durableoutbox.Worker{
		Store:       store,
		Producer:    producer,
		Logger:      logger.With("component", "outbox"),
		Interval:    cfg.OutboxInterval,
		Backoff:     cfg.OutboxBackoff,
		TopicPrefix: cfg.TopicPrefix,
		Source:      cfg.EventSource,
	}
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("outbox worker stopped", "error", err)
		}
	}()
	return nil
}

func (a *application) seed(ctx context.Context, path string, logger *slog.Logger) error {
	f, err := fixtures.Read(path)
	if err != nil {
		return err
	}
	if len(f.Properties) == 0 {
		logger.Info("no fixtures to import", "path", path)
		return nil
	}
	return fixtures.Seed(ctx, a.stores, f, logger)
}

// close flushes pending events and releases connections in reverse order.
func (a *application) close(logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.workers.Wait()
	if a.box != nil {
		if err := a.box.Flush(ctx); err != nil || a.box.Pending() > 0 {
			logger.Warn("events left unpublished", "pending", a.box.Pending(), "error", err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Error("close failed", "error", err)
		}
	}
}

