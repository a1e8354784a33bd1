package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopsphere/fulfillment/configs"
	"github.com/shopsphere/fulfillment/internal/bootstrap"
	"github.com/shopsphere/fulfillment/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}
	logging.Init("payment-service", cfg.App.LogFile, cfg.App.LogLevel)

	app, cleanup, err := bootstrap.InitPaymentService(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("consumer error: %v", err)
		}
	}()

	go func() {
		log.Printf("payment-service (%s) listening on %s", env, cfg.App.HTTPAddr)
		if err := app.Router.Run(cfg.App.HTTPAddr); err != nil {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Print("payment-service shutting down")
}
