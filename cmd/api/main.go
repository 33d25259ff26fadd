package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"tg-invest-bot/internal/adapters/charts"
	"tg-invest-bot/internal/adapters/market"
	"tg-invest-bot/internal/adapters/repo"
	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/cache"
	"tg-invest-bot/internal/infra/config"
	"tg-invest-bot/internal/infra/db"
	httpinfra "tg-invest-bot/internal/infra/http"
	"tg-invest-bot/internal/infra/log"
	"tg-invest-bot/internal/infra/metrics"
	"tg-invest-bot/internal/usecase/portfolio"
)

// api отдаёт данные мини-приложения: портфель, избранное и алерты.
// Запросы авторизуются подписью Telegram initData.
func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: нет подключения к БД")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	repoAdapter := repo.NewPostgres(pool)
	portfolioService := portfolio.NewService(portfolio.Deps{
		Log:      logger.With().Str("component", "portfolio").Logger(),
		Repo:     repoAdapter,
		Links:    repoAdapter,
		Ton:      market.NewTonAPI(cfg.Providers.TonAPIKey),
		Exchange: market.NewExchange(),
		Stocks:   market.NewFinnhub(cfg.Providers.FinnhubKey, cache.NewRedis(redisClient)),
		Crypto:   market.NewCoinMarketCap(cfg.Providers.CoinMarketCapKey),
		Charts:   charts.NewRenderer(),
	})

	api := &apiHandler{
		users:     repoAdapter,
		favorites: repoAdapter,
		alerts:    repoAdapter,
		portfolio: portfolioService,
	}

	server := httpinfra.NewServer(logger.With().Str("component", "http").Logger(), httpinfra.Options{Addr: ":8080"})
	server.Router.Group(func(protected chi.Router) {
		protected.Use(httpinfra.WebAppAuthMiddleware(cfg.Telegram.Token))

		protected.Get("/api/v1/portfolio", api.getPortfolio)
		protected.Post("/api/v1/portfolio", api.addPortfolioItem)
		protected.Delete("/api/v1/portfolio/{symbol}", api.removePortfolioItem)

		protected.Get("/api/v1/favorites", api.getFavorites)
		protected.Post("/api/v1/favorites", api.addFavorite)
		protected.Delete("/api/v1/favorites/{assetType}/{symbol}", api.removeFavorite)

		protected.Get("/api/v1/alerts", api.getAlerts)
		protected.Post("/api/v1/alerts", api.createAlert)
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("api: сервер остановлен")
		}
	}()
	<-ctx.Done()
	logger.Info().Msg("api: остановка")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

type apiHandler struct {
	users     domain.UserRepo
	favorites domain.FavoriteRepo
	alerts    domain.AlertRepo
	portfolio *portfolio.Service
}

func (h *apiHandler) resolveUser(r *http.Request) (domain.User, error) {
	return h.users.GetByPlatformID("telegram", httpinfra.PlatformUserID(r))
}

func (h *apiHandler) getPortfolio(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r)
	if err != nil {
		userError(w, err)
		return
	}
	positions, err := h.portfolio.Valuations(r.Context(), user.ID)
	if err != nil {
		httpinfra.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	items := make([]portfolioItemResponse, 0, len(positions))
	for _, p := range positions {
		items = append(items, portfolioItemResponse{
			AssetType: p.Item.AssetType,
			Symbol:    p.Item.Symbol,
			Amount:    p.Item.Amount,
			CostBasis: p.Item.CostBasis,
			Source:    p.Item.Source,
			Price:     p.Price,
			Value:     p.Value(),
			PnL:       p.PnL(),
		})
	}
	writeJSON(w, map[string]any{"items": items})
}

func (h *apiHandler) addPortfolioItem(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r)
	if err != nil {
		userError(w, err)
		return
	}
	defer r.Body.Close()
	var req struct {
		AssetType string  `json:"asset_type"`
		Symbol    string  `json:"symbol"`
		Amount    float64 `json:"amount"`
		CostBasis float64 `json:"cost_basis"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpinfra.WriteError(w, http.StatusBadRequest, err)
		return
	}
	if req.Symbol == "" || req.Amount <= 0 {
		httpinfra.WriteError(w, http.StatusBadRequest, errors.New("symbol и amount обязательны"))
		return
	}
	if err := h.portfolio.Add(user.ID, req.AssetType, req.Symbol, req.Amount, req.CostBasis); err != nil {
		httpinfra.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *apiHandler) removePortfolioItem(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r)
	if err != nil {
		userError(w, err)
		return
	}
	count, err := h.portfolio.Remove(user.ID, chi.URLParam(r, "symbol"))
	if err != nil {
		httpinfra.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, map[string]any{"removed": count})
}

func (h *apiHandler) getFavorites(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r)
	if err != nil {
		userError(w, err)
		return
	}
	favorites, err := h.favorites.List(user.ID)
	if err != nil {
		httpinfra.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	items := make([]favoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, favoriteResponse{AssetType: f.AssetType, Symbol: f.Symbol})
	}
	writeJSON(w, map[string]any{"items": items})
}

func (h *apiHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r)
	if err != nil {
		userError(w, err)
		return
	}
	defer r.Body.Close()
	var req favoriteResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpinfra.WriteError(w, http.StatusBadRequest, err)
		return
	}
	if req.Symbol == "" {
		httpinfra.WriteError(w, http.StatusBadRequest, errors.New("symbol обязателен"))
		return
	}
	if req.AssetType == "" {
		req.AssetType = "crypto"
	}
	added, err := h.favorites.Add(user.ID, req.AssetType, req.Symbol)
	if err != nil {
		httpinfra.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, map[string]any{"added": added})
}

func (h *apiHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r)
	if err != nil {
		userError(w, err)
		return
	}
	removed, err := h.favorites.Remove(user.ID, chi.URLParam(r, "assetType"), chi.URLParam(r, "symbol"))
	if err != nil {
		httpinfra.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	if !removed {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *apiHandler) getAlerts(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r)
	if err != nil {
		userError(w, err)
		return
	}
	alerts, err := h.alerts.ListActive(user.ID)
	if err != nil {
		httpinfra.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	items := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, alertResponse{
			ID:          a.ID,
			AssetType:   a.AssetType,
			Symbol:      a.Symbol,
			Condition:   a.Condition,
			TargetValue: a.TargetValue,
		})
	}
	writeJSON(w, map[string]any{"items": items})
}

func (h *apiHandler) createAlert(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r)
	if err != nil {
		userError(w, err)
		return
	}
	defer r.Body.Close()
	var req alertResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpinfra.WriteError(w, http.StatusBadRequest, err)
		return
	}
	if req.Symbol == "" || req.TargetValue <= 0 {
		httpinfra.WriteError(w, http.StatusBadRequest, errors.New("symbol и target_value обязательны"))
		return
	}
	condition := strings.ToLower(req.Condition)
	if condition != "price" && condition != "percent" {
		condition = "price"
	}
	created, err := h.alerts.Create(domain.Alert{
		UserID:      user.ID,
		AssetType:   strings.ToLower(req.AssetType),
		Symbol:      strings.ToUpper(req.Symbol),
		Condition:   condition,
		TargetValue: req.TargetValue,
	})
	if err != nil {
		httpinfra.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, alertResponse{
		ID:          created.ID,
		AssetType:   created.AssetType,
		Symbol:      created.Symbol,
		Condition:   created.Condition,
		TargetValue: created.TargetValue,
	})
}

type portfolioItemResponse struct {
	AssetType string   `json:"asset_type"`
	Symbol    string   `json:"symbol"`
	Amount    float64  `json:"amount"`
	CostBasis float64  `json:"cost_basis"`
	Source    string   `json:"source"`
	Price     *float64 `json:"price,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	PnL       *float64 `json:"pnl,omitempty"`
}

type favoriteResponse struct {
	AssetType string `json:"asset_type"`
	Symbol    string `json:"symbol"`
}

type alertResponse struct {
	ID          int64   `json:"id,omitempty"`
	AssetType   string  `json:"asset_type"`
	Symbol      string  `json:"symbol"`
	Condition   string  `json:"condition"`
	TargetValue float64 `json:"target_value"`
}

func userError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		httpinfra.WriteError(w, http.StatusUnauthorized, errors.New("пользователь не найден"))
		return
	}
	httpinfra.WriteError(w, http.StatusInternalServerError, err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
