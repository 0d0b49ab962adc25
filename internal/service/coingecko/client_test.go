package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/config"
	xlogger "InvestScout/pkg/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	lgr, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cfg := &config.Config{}
	cfg.Providers.Timeout = 5 * time.Second
	cfg.Providers.Coingecko.BaseURL = baseURL
	cfg.Providers.Coingecko.PerPage = 10
	cfg.Providers.Coingecko.Pages = 1
	return New(cfg, lgr)
}

func TestFetchNormalizesRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("vs_currency"); got != "usd" {
			t.Errorf("vs_currency = %q", got)
		}
		w.Write([]byte(`[
			{"id":"dogecoin","symbol":"doge","name":"Dogecoin","current_price":0.12,
			 "market_cap":17000000000,"market_cap_rank":9,"total_volume":900000000,
			 "price_change_percentage_24h":-4.2,"price_change_percentage_7d_in_currency":2.1},
			{"id":"ghost","symbol":"gho","name":"Ghost","current_price":null,"market_cap":null},
			{"id":"noname","symbol":"","name":"","current_price":1.0}
		]`))
	}))
	defer srv.Close()

	records, err := newTestClient(t, srv.URL).Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after dropping unusable rows, got %d", len(records))
	}
	r := records[0]
	if r.Symbol != "DOGE" {
		t.Errorf("symbol = %q, want DOGE", r.Symbol)
	}
	if r.CurrentPrice != 0.12 || r.MarketCapRank != 9 {
		t.Errorf("unexpected normalization: %+v", r)
	}
	if r.PriceChange24h != -4.2 || r.PriceChange7d != 2.1 {
		t.Errorf("momentum not carried over: %+v", r)
	}
}

func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Fetch(context.Background(), 0)
	if !errors.Is(err, drepo.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Fetch(context.Background(), 0)
	if !errors.Is(err, drepo.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestFetchHonorsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "2" {
			t.Errorf("per_page = %q, want 2", got)
		}
		w.Write([]byte(`[
			{"id":"a","symbol":"a","name":"A","current_price":0.5},
			{"id":"b","symbol":"b","name":"B","current_price":0.6}
		]`))
	}))
	defer srv.Close()

	records, err := newTestClient(t, srv.URL).Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}
