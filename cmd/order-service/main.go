package main

import (
	"log"
	"os"

	"github.com/shopsphere/fulfillment/configs"
	"github.com/shopsphere/fulfillment/internal/bootstrap"
	"github.com/shopsphere/fulfillment/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}
	logging.Init("order-service", cfg.App.LogFile, cfg.App.LogLevel)

	app, cleanup, err := bootstrap.InitOrderService(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	log.Printf("order-service (%s) listening on %s", env, cfg.App.HTTPAddr)
	if err := app.Router.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
