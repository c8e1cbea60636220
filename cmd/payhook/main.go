package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayHook/internal/pkg/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := newApplication()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("[Server] Listen failed: %v", err)
		}
	case sig := <-quit:
		log.Infof("[Server] Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		log.Errorf("[Server] Shutdown: %v", err)
	}
}

func newApplication() *server.Application {
	app, err := server.NewFromEnv()
	if err != nil {
		log.Fatalf("[Server] %v", err)
	}
	return app
}
