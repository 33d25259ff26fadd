package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	DispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_dispatch_total",
		Help: "Количество обработанных токенов по видам",
	}, []string{"kind"})

	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_rate_limited_total",
		Help: "Количество запросов, отброшенных лимитером",
	})

	BotSendErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_send_errors_total",
		Help: "Ошибки отправки сообщений ботом",
	})

	WatchTickSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "watch_tick_seconds",
		Help:    "Время одного прохода наблюдения за ценами",
		Buckets: prometheus.DefBuckets,
	})

	WatchNotificationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watch_notifications_total",
		Help: "Количество отправленных уведомлений о движении цены",
	})

	BroadcastDeliveredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "broadcast_delivered_total",
		Help: "Количество доставленных сообщений рассылки",
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 25, 30},
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "target", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		DispatchTotal,
		RateLimitedTotal,
		BotSendErrors,
		WatchTickSeconds,
		WatchNotificationsTotal,
		BroadcastDeliveredTotal,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// StartServer запускает HTTP сервер с эндпоинтом /metrics.
func StartServer(ctx context.Context, logger zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	shutdownCtx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-ctx.Done():
		case <-shutdownCtx.Done():
		}
		shutdownTimeout, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer timeoutCancel()
		if err := srv.Shutdown(shutdownTimeout); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: graceful shutdown failed")
		}
	}()

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics: server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: server stopped")
		}
		cancel()
	}()
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// IncDispatch увеличивает счётчик обработанных токенов.
func IncDispatch(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	DispatchTotal.WithLabelValues(kind).Inc()
}
