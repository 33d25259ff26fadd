package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/metrics"
)

// ErrNoCustomer означает, что у пользователя нет платёжного профиля.
var ErrNoCustomer = errors.New("у пользователя нет платёжного профиля")

// Stripe реализует платёжные операции через Stripe API.
type Stripe struct {
	apiBase      string
	secretKey    string
	priceIDPro   string
	priceIDElite string
	successURL   string
	cancelURL    string
	client       *http.Client
}

// Config задаёт параметры Stripe-клиента.
type Config struct {
	APIBase      string
	SecretKey    string
	PriceIDPro   string
	PriceIDElite string
	SuccessURL   string
	CancelURL    string
}

// NewStripe создаёт платёжный адаптер.
func NewStripe(cfg Config) *Stripe {
	base := strings.TrimSuffix(cfg.APIBase, "/")
	if base == "" {
		base = "https://api.stripe.com"
	}
	return &Stripe{
		apiBase:      base,
		secretKey:    cfg.SecretKey,
		priceIDPro:   cfg.PriceIDPro,
		priceIDElite: cfg.PriceIDElite,
		successURL:   cfg.SuccessURL,
		cancelURL:    cfg.CancelURL,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

var _ domain.PaymentProvider = (*Stripe)(nil)

// Configured реализует domain.PaymentProvider.
func (s *Stripe) Configured() bool {
	return s.secretKey != ""
}

func (s *Stripe) priceID(tier domain.Tier) string {
	switch tier {
	case domain.TierElite:
		return s.priceIDElite
	default:
		return s.priceIDPro
	}
}

// CheckoutURL реализует domain.PaymentProvider.
func (s *Stripe) CheckoutURL(ctx context.Context, user domain.User, tier domain.Tier) (string, error) {
	price := s.priceID(tier)
	if !s.Configured() || price == "" {
		return "", errors.New("платежи не настроены")
	}

	form := url.Values{
		"mode":                       {"subscription"},
		"line_items[0][price]":       {price},
		"line_items[0][quantity]":    {"1"},
		"client_reference_id":        {strconv.FormatInt(user.ID, 10)},
		"metadata[user_id]":          {strconv.FormatInt(user.ID, 10)},
		"metadata[tier]":             {string(tier)},
		"metadata[platform_user_id]": {user.PlatformUserID},
	}
	if s.successURL != "" {
		form.Set("success_url", s.successURL)
	}
	if s.cancelURL != "" {
		form.Set("cancel_url", s.cancelURL)
	}
	if user.StripeCustomerID != "" {
		form.Set("customer", user.StripeCustomerID)
	}

	var session struct {
		URL string `json:"url"`
	}
	if err := s.post(ctx, "checkout_session", "/v1/checkout/sessions", form, &session); err != nil {
		return "", err
	}
	if session.URL == "" {
		return "", errors.New("stripe: пустая ссылка на оплату")
	}
	return session.URL, nil
}

// PortalURL реализует domain.PaymentProvider.
func (s *Stripe) PortalURL(ctx context.Context, user domain.User) (string, error) {
	if !s.Configured() {
		return "", errors.New("платежи не настроены")
	}
	if user.StripeCustomerID == "" {
		return "", ErrNoCustomer
	}

	form := url.Values{"customer": {user.StripeCustomerID}}
	var session struct {
		URL string `json:"url"`
	}
	if err := s.post(ctx, "billing_portal", "/v1/billing_portal/sessions", form, &session); err != nil {
		return "", err
	}
	return session.URL, nil
}

// SubscriptionStatus реализует domain.PaymentProvider.
func (s *Stripe) SubscriptionStatus(ctx context.Context, user domain.User) (string, error) {
	if !s.Configured() || user.StripeCustomerID == "" {
		return "none", nil
	}

	endpoint := s.apiBase + "/v1/subscriptions?customer=" + url.QueryEscape(user.StripeCustomerID) + "&limit=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	metrics.ObserveNetworkRequest("stripe", "subscriptions_list", "payments", start, err)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("stripe api error: status=%d", resp.StatusCode)
	}

	var raw struct {
		Data []struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Data) == 0 {
		return "none", nil
	}
	return raw.Data[0].Status, nil
}

func (s *Stripe) post(ctx context.Context, operation, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := s.client.Do(req)
	metrics.ObserveNetworkRequest("stripe", operation, "payments", start, err)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("stripe api error: status=%d body=%s", resp.StatusCode, string(data))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode stripe response: %w", err)
	}
	return nil
}
