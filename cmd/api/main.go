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

	"github.com/asysyifa-husada/clinic-service/internal/auth"
	clinichttp "github.com/asysyifa-husada/clinic-service/internal/http"
	"github.com/asysyifa-husada/clinic-service/internal/messaging"
	"github.com/asysyifa-husada/clinic-service/internal/seed"
	"github.com/asysyifa-husada/clinic-service/internal/storage"
	"github.com/asysyifa-husada/clinic-service/internal/telemetry"
	"github.com/asysyifa-husada/clinic-service/internal/users"
)

func main() {
	ctx := context.Background()

	// OpenTelemetry first so everything after it is traced
	otelProvider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: OpenTelemetry initialization failed: %v", err)
	}
	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics initialization failed: %v", err)
		metrics = nil
	}

	kv, err := storage.Open(ctx)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer kv.Close()

	// RabbitMQ is optional; events are dropped when the broker is down
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events will not be published: %v", err)
		publisher = nil
	}

	tokens := auth.NewTokenService()

	userService := users.NewService(kv, tokens)
	if err := userService.Bootstrap(ctx); err != nil {
		log.Fatalf("failed to bootstrap superadmin: %v", err)
	}

	if os.Getenv("SEED_SAMPLE_DATA") != "false" {
		if err := seed.Run(ctx, kv); err != nil {
			log.Printf("Warning: sample data seeding failed: %v", err)
		}
	}

	capsPath := os.Getenv("CAPABILITIES_FILE")
	if capsPath == "" {
		capsPath = "capabilities.yml"
	}
	caps, err := auth.LoadCapabilities(capsPath)
	if err != nil {
		log.Fatalf("failed to load capabilities: %v", err)
	}

	router := clinichttp.SetupRouter(kv, tokens, publisher, caps, metrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      clinichttp.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("clinic-service starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("Error closing publisher: %v", err)
		}
	}
	if otelProvider != nil {
		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}
	log.Println("Shutdown complete")
}
