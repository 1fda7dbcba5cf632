// README: Entry point; loads config, wires the completion provider and optional stores, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daytrip/internal/ai"
	"daytrip/internal/config"
	httptransport "daytrip/internal/http"
	"daytrip/internal/infra"
	"daytrip/internal/modules/aiusage"
	"daytrip/internal/modules/ratelimit"
	"daytrip/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AI.APIKey == "" {
		log.Printf("warning: %s is not set; itinerary requests will fail until it is configured", ai.APIKeyVariable(cfg.AI.Provider))
	}
	provider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("ai provider: %v", err)
	}
	defer provider.Close()

	deps := httptransport.ServerDeps{
		Planner: service.NewTripPlanner(provider),
	}

	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		deps.Usage = aiusage.NewService(aiusage.NewStore(dbPool, cfg.Limits.MonthlyTokens))
	}

	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer redisClient.Close()
		deps.Limiter = ratelimit.NewLimiter(redisClient, cfg.Limits.RequestsPerMinute)
	}

	if cfg.Firebase.ProjectID != "" {
		verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
		deps.Verifier = verifier
	}

	handler := httptransport.NewServer(deps)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("itinerary planner listening on %s (provider=%s model=%s)", cfg.HTTP.Addr, cfg.AI.Provider, cfg.AI.Model)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
