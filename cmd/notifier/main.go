package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"tg-invest-bot/internal/adapters/bot"
	"tg-invest-bot/internal/adapters/repo"
	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/config"
	"tg-invest-bot/internal/infra/db"
	"tg-invest-bot/internal/infra/log"
	"tg-invest-bot/internal/infra/metrics"
	"tg-invest-bot/internal/infra/queue"
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

	var jobs domain.BroadcastQueue
	if cfg.Queues.Driver == "rabbitmq" {
		jobs, err = queue.NewRabbitBroadcastQueue(cfg.Queues.AMQPURL, cfg.Queues.Broadcast)
		if err != nil {
			logger.Fatal().Err(err).Msg("не удалось подключиться к очереди")
		}
	} else {
		jobs = queue.NewRedisBroadcastQueue(redisClient, cfg.Queues.Broadcast)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать бота")
	}

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), ":9090")
	logger.Info().Msg("рассыльщик запущен")
	run(ctx, logger, jobs, repo.NewPostgres(pool), bot.NewNotifier(botAPI, logger))
	logger.Info().Msg("остановка рассыльщика")
}

// run обрабатывает задачи рассылки до отмены контекста. Задача
// подтверждается, если доставлена хотя бы части получателей.
func run(ctx context.Context, logger zerolog.Logger, jobs domain.BroadcastQueue, users domain.UserRepo, notifier domain.Notifier) {
	for {
		job, ack, err := jobs.Receive(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Error().Err(err).Msg("не удалось получить задачу")
			continue
		}

		ids, err := users.ListPlatformUserIDs(job.Platform)
		if err != nil {
			logger.Error().Err(err).Str("job_id", job.ID).Msg("не удалось получить получателей")
			if ackErr := ack(false); ackErr != nil {
				logger.Error().Err(ackErr).Msg("не удалось вернуть задачу в очередь")
			}
			continue
		}

		delivered := 0
		for _, id := range ids {
			if err := notifier.Notify(ctx, id, job.Text); err != nil {
				logger.Warn().Err(err).Str("platform_user_id", id).Msg("не удалось доставить сообщение")
				continue
			}
			delivered++
			metrics.BroadcastDeliveredTotal.Inc()
		}
		logger.Info().
			Str("job_id", job.ID).
			Int("recipients", len(ids)).
			Int("delivered", delivered).
			Msg("рассылка обработана")
		if err := ack(true); err != nil {
			logger.Error().Err(err).Str("job_id", job.ID).Msg("не удалось подтвердить задачу")
		}
	}
}
