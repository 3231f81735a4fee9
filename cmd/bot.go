package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/configs"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/configs/loader/dotEnvLoader"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/delivery/telegram"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/repository/googleSheets"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/repository/sessionStore"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/usecase"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/pkg/logger"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/pkg/prometheus"
)

func main() {

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	cfgLoader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(cfgLoader)
	log := logger.NewLogger(cfg)

	prometheus.Init()
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":8080", nil)
	log.Info("Starting prometheus at port 8080")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports, err := googleSheets.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to create report store:", "error", err)
		os.Exit(1)
	}
	sessions := sessionStore.NewSessionStore()

	bot, err := telegram.NewBot(cfg, log)
	if err != nil {
		log.Error("failed to create bot:", "error", err)
		os.Exit(1)
	}
	conversation := usecase.NewConversation(sessions, reports, bot, bot, cfg.Hotels, log)

	log.Info("Starting bot")
	go func() {
		if err := bot.Run(ctx, conversation); err != nil {
			log.Error("bot stopped:", "error", err)
			done <- syscall.SIGTERM
		}
	}()
	<-done
	log.Info("Shutting down bot", "active_sessions", len(sessions.ActiveIDs(ctx)))

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	bot.Stop(ctx)
	log.Info("Service stopped")
}
