package main

import (
	"context"
	"net"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bybit-trade-bot/bybit"
	"bybit-trade-bot/config"
	"bybit-trade-bot/webhook"
)

func main() {
	// A missing .env is fine, settings may come from the environment.
	_ = godotenv.Load()

	settings := config.FromEnv()

	log := logrus.New()
	if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := settings.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	exchange := bybit.NewClient(bybit.Config{
		Testnet:   settings.Testnet,
		Demo:      settings.Demo,
		APIKey:    settings.APIKey,
		APISecret: settings.APISecret,
		Domain:    settings.Domain,
		TLD:       settings.TLD,
	}, http.DefaultClient)

	listener, err := net.Listen("tcp", settings.ListenAddr)
	if err != nil {
		log.WithError(err).WithField("addr", settings.ListenAddr).Fatal("listen failed")
	}

	log.WithFields(logrus.Fields{
		"addr":    settings.ListenAddr,
		"testnet": settings.Testnet,
		"demo":    settings.Demo,
	}).Info("starting webhook server")

	webhookServer := webhook.NewWebhook(listener, exchange, log)
	if err := webhookServer.Serve(context.Background()); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server stopped")
	}
}
