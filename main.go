package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"resource-service/bootstrap"
	"resource-service/config"
	"resource-service/db"
	"resource-service/events"
	"resource-service/handlers"
	"resource-service/security"
	"resource-service/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("connect to mongo", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(connectCtx, database); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	if cfg.EnableBootstrap {
		if err := bootstrap.InsertInitialData(connectCtx, database, logger); err != nil {
			logger.Fatal("bootstrap demo data", zap.Error(err))
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL)
		if err != nil {
			logger.Fatal("connect to nats", zap.Error(err))
		}
		defer nc.Close()
		publisher = events.NewNATSPublisher(nc, logger)
	}

	userRepo := db.NewUserRepo(database)
	projectRepo := db.NewProjectRepo(database)
	taskRepo := db.NewTaskRepo(database)

	tokens := security.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	identityService := service.NewIdentityService(userRepo, logger)
	projectService := service.NewProjectService(projectRepo, taskRepo, userRepo, logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, publisher, logger)

	router := handlers.NewRouter(tokens,
		handlers.NewUserHandler(identityService, tokens, logger),
		handlers.NewProjectHandler(projectService, logger),
		handlers.NewTaskHandler(taskService, logger),
	)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      gorillahandlers.RecoveryHandler()(c.Handler(router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
