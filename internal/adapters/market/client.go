package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tg-invest-bot/internal/infra/metrics"
)

const defaultTimeout = 10 * time.Second

// getJSON выполняет GET-запрос, декодирует JSON и пишет сетевые метрики.
func getJSON(ctx context.Context, client *http.Client, component, operation, target, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := client.Do(req)
	metrics.ObserveNetworkRequest(component, operation, target, start, err)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", component, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s api error: status=%d body=%s", component, resp.StatusCode, string(data))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", component, err)
	}
	return nil
}

// decodeJSON читает тело ответа в out.
func decodeJSON(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func ptr(v float64) *float64 { return &v }

// nonZero возвращает указатель на значение, если оно отлично от нуля.
func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
