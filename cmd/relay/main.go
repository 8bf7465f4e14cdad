package main

import (
	"chat-relay/api"
	"chat-relay/auth"
	"chat-relay/directory"
	"chat-relay/internal"
	"chat-relay/observability"
	"chat-relay/push"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/dispatch"
	"chat-relay/runtime/workers"
	"chat-relay/services"
	"chat-relay/ws"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so deferred cleanup always executes.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Delivery plumbing
	counters := observability.NewDeliveryCounters()
	registry := runtime.NewRegistry()

	userRepo := repositories.NewUserRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)
	msgRepo := repositories.NewMessageRepository(db, log, counters)

	users := directory.NewUserDirectory(userRepo, registry, counters, log)
	rooms := directory.NewRoomDirectory(roomRepo, registry, counters, log)

	transport := push.NewWebPushTransport(subRepo, log,
		config.PushSubscriber, config.VapidPublicKey, config.VapidPrivateKey,
		config.PushTTLSeconds)
	dispatcher := dispatch.NewDispatcher(transport, log, counters,
		config.PushWorkers, config.PushTimeout)

	router := services.NewRouterService(users, rooms, msgRepo, dispatcher,
		log, config.FrontendURL)

	// 4. Boundary
	tokens := auth.NewTokenManager(config.AuthTokenSecret, config.AuthTokenDuration)
	hub := ws.NewHub(registry, router, config.MaxContentLength, log)
	wsHandler := ws.NewHandler(hub, users, tokens, config.ConnectionBufferSize, log)
	subsHandler := api.NewSubscriptionHandler(subRepo, log)

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	app := api.NewApplication(wsHandler, subsHandler, tokens, addr, log)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervised workers
	sup := workers.NewSupervisor(log)
	sup.Add(hub, workers.NewStoreJanitor(db, config.StoreGCInterval, log))

	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	if config.DebugPort > 0 {
		internal.StartDebugServer(db, config.DebugPort, counters.Snapshot)
	}

	// 7. Serve until shutdown
	err = app.Run(ctx, app.Mount())

	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return err
}
