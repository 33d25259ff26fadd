package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"tg-invest-bot/internal/adapters/bot"
	"tg-invest-bot/internal/adapters/market"
	"tg-invest-bot/internal/adapters/repo"
	"tg-invest-bot/internal/infra/cache"
	"tg-invest-bot/internal/infra/config"
	"tg-invest-bot/internal/infra/db"
	"tg-invest-bot/internal/infra/log"
	"tg-invest-bot/internal/infra/metrics"
	"tg-invest-bot/internal/usecase/watch"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось подключиться к БД")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	redisCache := cache.NewRedis(redisClient)

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать бота")
	}

	repoAdapter := repo.NewPostgres(pool)
	watcher := watch.NewService(watch.Deps{
		Log:       logger.With().Str("component", "watch").Logger(),
		Repo:      repoAdapter,
		Stocks:    market.NewFinnhub(cfg.Providers.FinnhubKey, redisCache),
		Crypto:    market.NewCoinMarketCap(cfg.Providers.CoinMarketCapKey),
		Forex:     market.NewAlphaVantage(cfg.Providers.AlphaVantageKey),
		Notifier:  bot.NewNotifier(botAPI, logger),
		Cache:     redisCache,
		Platform:  "telegram",
		Threshold: cfg.Watch.AlertPercent,
	})

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), ":9090")

	interval := time.Duration(cfg.Watch.TickSeconds) * time.Second
	logger.Info().Dur("interval", interval).Msg("наблюдатель запущен")
	watcher.Run(ctx, interval)
	logger.Info().Msg("остановка наблюдателя")
}
