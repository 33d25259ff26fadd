package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestServerServiceRoutes(t *testing.T) {
	server := NewServer(zerolog.Nop(), Options{})

	for _, route := range []string{"/healthz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, route, nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s вернул %d, ожидался 200", route, rec.Code)
		}
	}
}

func TestServerRouterAcceptsNewRoutes(t *testing.T) {
	server := NewServer(zerolog.Nop(), Options{})
	server.Router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("навешенный маршрут не отвечает: %d %q", rec.Code, rec.Body.String())
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.Addr != ":8080" {
		t.Fatalf("адрес по умолчанию %q, ожидался :8080", opts.Addr)
	}
	if opts.ReadTimeout != 15*time.Second || opts.WriteTimeout != 15*time.Second {
		t.Fatalf("неожиданные таймауты: %v / %v", opts.ReadTimeout, opts.WriteTimeout)
	}

	custom := Options{Addr: ":9090", ReadTimeout: time.Second}.withDefaults()
	if custom.Addr != ":9090" || custom.ReadTimeout != time.Second {
		t.Fatalf("явные значения не должны перетираться: %+v", custom)
	}
}
