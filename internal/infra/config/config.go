package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию сервисов. Ключи провайдеров
// необязательны: без ключа провайдер отвечает недоступными данными.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	TZ     string `envconfig:"TZ" default:"Europe/Amsterdam"`
	Port   int    `envconfig:"PORT" default:"8080"`

	Telegram struct {
		Token      string `envconfig:"TG_BOT_TOKEN"`
		WebhookURL string `envconfig:"TG_WEBHOOK_URL"`
		WebAppURL  string `envconfig:"TG_WEBAPP_URL"`
	} `envconfig:""`

	PGDSN string `envconfig:"PG_DSN"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	Providers struct {
		FinnhubKey       string `envconfig:"FINNHUB_API_KEY"`
		CoinMarketCapKey string `envconfig:"COINMARKETCAP_API_KEY"`
		AlphaVantageKey  string `envconfig:"ALPHAVANTAGE_API_KEY"`
		TonAPIKey        string `envconfig:"TONAPI_KEY"`
		OpenSeaKey       string `envconfig:"OPENSEA_API_KEY"`
		NewsAPIKey       string `envconfig:"NEWSAPI_KEY"`
	} `envconfig:""`

	Translate struct {
		URL    string `envconfig:"LIBRETRANSLATE_URL"`
		APIKey string `envconfig:"LIBRETRANSLATE_API_KEY"`
	} `envconfig:""`

	Payments struct {
		APIBase      string `envconfig:"PAYMENTS_API_BASE" default:"https://api.stripe.com"`
		SecretKey    string `envconfig:"STRIPE_SECRET_KEY"`
		PriceIDPro   string `envconfig:"STRIPE_PRICE_PRO"`
		PriceIDElite string `envconfig:"STRIPE_PRICE_ELITE"`
		SuccessURL   string `envconfig:"PAYMENTS_SUCCESS_URL"`
		CancelURL    string `envconfig:"PAYMENTS_CANCEL_URL"`
	} `envconfig:""`

	Limits struct {
		RateMax           int `envconfig:"RATE_LIMIT_MAX" default:"12"`
		RateWindowSeconds int `envconfig:"RATE_LIMIT_WINDOW_SECONDS" default:"10"`
	} `envconfig:""`

	Watch struct {
		TickSeconds  int     `envconfig:"WATCH_TICK_SECONDS" default:"300"`
		AlertPercent float64 `envconfig:"PRICE_ALERT_PERCENT" default:"5"`
	} `envconfig:""`

	Queues struct {
		Driver    string `envconfig:"QUEUE_DRIVER" default:"redis"`
		Broadcast string `envconfig:"BROADCAST_QUEUE_KEY" default:"broadcast_jobs"`
		AMQPURL   string `envconfig:"AMQP_URL"`
	} `envconfig:""`
}

// Load загружает конфиг из окружения. Файл .env подхватывается, если есть.
func Load() AppConfig {
	_ = godotenv.Load()
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}
