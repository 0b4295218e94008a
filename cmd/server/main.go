package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mix-service/config"
	"mix-service/internal/api"
	"mix-service/internal/broker"
	"mix-service/internal/catalog"
	"mix-service/internal/mode"
	"mix-service/internal/redisclient"
	"mix-service/internal/savedmix"
	"mix-service/internal/session"
	"mix-service/internal/util"
	"mix-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting mix service")

	tp, err := util.InitTracer("mix-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	catalogStore, err := catalog.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to catalog database: %v", err)
	}
	defer catalogStore.Close()
	log.Println("Catalog database connected")

	kvClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer kvClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicDrafts)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	intake := broker.NewIntakePublisher(producer)
	savedStore := savedmix.NewStore(kvClient)
	detector := mode.NewDetector(kvClient)
	registry := session.NewRegistry()

	watcherCtx, watcherCancel := context.WithCancel(context.Background())
	defer watcherCancel()

	modeWatcher := worker.NewModeWatcher(kvClient, detector, registry)
	go func() {
		if err := modeWatcher.Start(watcherCtx); err != nil && err != context.Canceled {
			log.Printf("Mode watcher error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(catalogStore, savedStore, intake, detector, registry)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	watcherCancel()

	log.Println("Server exited")
}
