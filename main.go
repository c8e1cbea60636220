package main

import (
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayHook/internal/pkg/server"
)

func main() {
	app := newApplication()
	log.Fatal(app.Listen())
}

func newApplication() *server.Application {
	app, err := server.NewFromEnv()
	if err != nil {
		log.Fatalf("[Server] %v", err)
	}
	return app
}
