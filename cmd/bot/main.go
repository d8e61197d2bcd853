package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/Spok95/warehouse-bot/internal/api"
	"github.com/Spok95/warehouse-bot/internal/bot"
	"github.com/Spok95/warehouse-bot/internal/config"
	"github.com/Spok95/warehouse-bot/internal/dialog"
	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/orders"
	"github.com/Spok95/warehouse-bot/internal/domain/products"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
	"github.com/Spok95/warehouse-bot/internal/domain/warehouse"
	"github.com/Spok95/warehouse-bot/internal/infra/db"
	"github.com/Spok95/warehouse-bot/internal/infra/logger"
)

const updatesTimeoutSec = 30

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram authorized", "username", tg.Self.UserName)

	usersRepo := users.NewRepo(pool)
	productsRepo := products.NewRepo(pool)
	inventoryRepo := inventory.NewRepo(pool)
	ordersRepo := orders.NewRepo(pool)
	warehouseRepo := warehouse.NewRepo(pool)
	statesRepo := dialog.NewRepo(pool, time.Duration(cfg.Dialog.TTLHours)*time.Hour)

	srv := api.NewServer(api.ServerConfig{
		Addr:           cfg.HTTP.Addr,
		JWTSecret:      cfg.API.JWTSecret,
		AdminLogin:     cfg.API.AdminLogin,
		AdminPassword:  cfg.API.AdminPassword,
		MetricsEnabled: cfg.Metrics.Enabled,
	}, log, warehouseRepo)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server error", "err", err)
		}
	}()

	b := bot.New(tg, log, usersRepo, productsRepo, inventoryRepo, ordersRepo, statesRepo)
	go func() {
		if err := b.Run(ctx, updatesTimeoutSec); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
			stop()
		}
	}()
	log.Info("bot started")

	<-ctx.Done()
	_ = srv.Shutdown()
	log.Info("graceful shutdown complete")
}
