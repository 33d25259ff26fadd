package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	chi "github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"tg-invest-bot/internal/adapters/bot"
	"tg-invest-bot/internal/adapters/charts"
	"tg-invest-bot/internal/adapters/market"
	"tg-invest-bot/internal/adapters/payments"
	"tg-invest-bot/internal/adapters/repo"
	"tg-invest-bot/internal/adapters/translate"
	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/cache"
	"tg-invest-bot/internal/infra/config"
	"tg-invest-bot/internal/infra/db"
	"tg-invest-bot/internal/infra/log"
	"tg-invest-bot/internal/infra/metrics"
	"tg-invest-bot/internal/infra/queue"
	"tg-invest-bot/internal/infra/ratelimit"
	"tg-invest-bot/internal/usecase/dialog"
	"tg-invest-bot/internal/usecase/portfolio"
	"tg-invest-bot/internal/usecase/router"
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

	broadcastQueue, err := newBroadcastQueue(cfg, redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать очередь рассылки")
	}

	repoAdapter := repo.NewPostgres(pool)
	finnhub := market.NewFinnhub(cfg.Providers.FinnhubKey, redisCache)
	cmc := market.NewCoinMarketCap(cfg.Providers.CoinMarketCapKey)
	tonAPI := market.NewTonAPI(cfg.Providers.TonAPIKey)

	portfolioService := portfolio.NewService(portfolio.Deps{
		Log:      logger.With().Str("component", "portfolio").Logger(),
		Repo:     repoAdapter,
		Links:    repoAdapter,
		Ton:      tonAPI,
		Exchange: market.NewExchange(),
		Stocks:   finnhub,
		Crypto:   cmc,
		Charts:   charts.NewRenderer(),
	})

	routerService := router.NewService(router.Deps{
		Log:        logger.With().Str("component", "router").Logger(),
		Users:      repoAdapter,
		Alerts:     repoAdapter,
		Audit:      repoAdapter,
		Toggles:    repoAdapter,
		Stocks:     finnhub,
		Crypto:     cmc,
		Forex:      market.NewAlphaVantage(cfg.Providers.AlphaVantageKey),
		Ton:        tonAPI,
		NFT:        market.NewOpenSea(cfg.Providers.OpenSeaKey),
		News:       market.NewNewsAPI(cfg.Providers.NewsAPIKey),
		Translator: translate.NewLibreTranslate(cfg.Translate.URL, cfg.Translate.APIKey),
		Payments: payments.NewStripe(payments.Config{
			APIBase:      cfg.Payments.APIBase,
			SecretKey:    cfg.Payments.SecretKey,
			PriceIDPro:   cfg.Payments.PriceIDPro,
			PriceIDElite: cfg.Payments.PriceIDElite,
			SuccessURL:   cfg.Payments.SuccessURL,
			CancelURL:    cfg.Payments.CancelURL,
		}),
		Broadcast: broadcastQueue,
		Portfolio: portfolioService,
		WebAppURL: cfg.Telegram.WebAppURL,
	})

	dialogService := dialog.NewService(dialog.Deps{
		Log:       logger.With().Str("component", "dialog").Logger(),
		Router:    routerService,
		Portfolio: portfolioService,
		Users:     repoAdapter,
		Alerts:    repoAdapter,
		Toggles:   repoAdapter,
		Broadcast: broadcastQueue,
	})

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать бота")
	}
	limiter := ratelimit.New(cfg.Limits.RateMax, time.Duration(cfg.Limits.RateWindowSeconds)*time.Second)
	handler := bot.NewHandler(botAPI, logger, routerService, dialogService, repoAdapter, limiter)

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), ":9090")

	if cfg.Telegram.WebhookURL != "" {
		runWebhook(ctx, cfg, logger, handler)
	} else {
		runLongPolling(ctx, botAPI, handler)
	}
	logger.Info().Msg("остановка бота")
}

func runWebhook(ctx context.Context, cfg config.AppConfig, logger zerolog.Logger, handler *bot.Handler) {
	r := chi.NewRouter()
	r.Post("/bot/webhook", func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		handler.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: ":8080", Handler: r}
	go func() {
		logger.Info().Str("webhook", cfg.Telegram.WebhookURL).Msg("бот-гейтвей запущен")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP сервер остановлен")
		}
	}()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func runLongPolling(ctx context.Context, botAPI *tgbotapi.BotAPI, handler *bot.Handler) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := botAPI.GetUpdatesChan(updateConfig)
	for {
		select {
		case <-ctx.Done():
			botAPI.StopReceivingUpdates()
			return
		case update := <-updates:
			handler.HandleUpdate(ctx, update)
		}
	}
}

func newBroadcastQueue(cfg config.AppConfig, redisClient *redis.Client) (domain.BroadcastQueue, error) {
	if cfg.Queues.Driver == "rabbitmq" {
		return queue.NewRabbitBroadcastQueue(cfg.Queues.AMQPURL, cfg.Queues.Broadcast)
	}
	return queue.NewRedisBroadcastQueue(redisClient, cfg.Queues.Broadcast), nil
}

var (
	_ domain.UserRepo          = (*repo.Postgres)(nil)
	_ domain.PortfolioRepo     = (*repo.Postgres)(nil)
	_ domain.FavoriteRepo      = (*repo.Postgres)(nil)
	_ domain.AlertRepo         = (*repo.Postgres)(nil)
	_ domain.LinkRepo          = (*repo.Postgres)(nil)
	_ domain.WatchRepo         = (*repo.Postgres)(nil)
	_ domain.AuditRepo         = (*repo.Postgres)(nil)
	_ domain.FeatureToggleRepo = (*repo.Postgres)(nil)
	_ domain.StockMarket       = (*market.Finnhub)(nil)
	_ domain.CryptoMarket      = (*market.CoinMarketCap)(nil)
	_ domain.ForexMarket       = (*market.AlphaVantage)(nil)
	_ domain.TonExplorer       = (*market.TonAPI)(nil)
	_ domain.NFTMarket         = (*market.OpenSea)(nil)
	_ domain.NewsFeed          = (*market.NewsAPI)(nil)
	_ domain.ExchangeClient    = (*market.Exchange)(nil)
	_ domain.Translator        = (*translate.LibreTranslate)(nil)
	_ domain.PaymentProvider   = (*payments.Stripe)(nil)
	_ domain.ChartRenderer     = (*charts.Renderer)(nil)
	_ domain.Notifier          = (*bot.Notifier)(nil)
	_ domain.Cache             = (*cache.RedisCache)(nil)
)
