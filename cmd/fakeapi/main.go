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

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/fakeapi"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	demoUser     = "demo"
	demoPassword = "demo-password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)

	backend := fakeapi.New(fakeapi.Config{Secret: cfg.FakeAPISecret})
	if _, err := backend.AddUser(models.RegisterRequest{
		Username:  demoUser,
		Email:     "demo@example.com",
		Password:  demoPassword,
		FirstName: "Demo",
	}); err != nil {
		log.Fatalf("seed demo user: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.FakeAPIAddr,
		Handler:           fakeapi.NewEcho(backend, logger),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("fakeapi_listening", "addr", cfg.FakeAPIAddr, "demo_user", demoUser)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting_down")

	go func() {
		<-quit
		log.Println("force exit")
		os.Exit(1)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	logger.Info("shutdown_complete")
}
