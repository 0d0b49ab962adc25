package finnhub

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

func newTestClient(t *testing.T, baseURL string, symbols ...string) *Client {
	t.Helper()
	lgr, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cfg := &config.Config{}
	cfg.Providers.Timeout = 5 * time.Second
	cfg.Providers.Finnhub.BaseURL = baseURL
	cfg.Providers.Finnhub.APIKey = "test-key"
	cfg.Providers.Stocks.Symbols = symbols
	cfg.Providers.Stocks.FetchDelay = time.Millisecond
	return New(cfg, lgr)
}

func TestFetchMapsQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("token"); got != "test-key" {
			t.Errorf("token = %q", got)
		}
		switch r.URL.Query().Get("symbol") {
		case "SIRI":
			w.Write([]byte(`{"c":3.10,"dp":-6.0,"pc":3.30}`))
		case "GHOST":
			// Unknown symbols come back as all zeros, not as an error.
			w.Write([]byte(`{"c":0,"dp":0,"pc":0}`))
		default:
			t.Errorf("unexpected symbol %q", r.URL.Query().Get("symbol"))
		}
	}))
	defer srv.Close()

	records, err := newTestClient(t, srv.URL, "SIRI", "GHOST").Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Symbol != "SIRI" || r.CurrentPrice != 3.10 || r.PriceChange24h != -6.0 {
		t.Errorf("unexpected mapping: %+v", r)
	}
	if r.Volume24h != 0 || r.MarketCap != 0 {
		t.Errorf("finnhub quotes carry no volume or cap: %+v", r)
	}
}

func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, "SIRI", "NOK").Fetch(context.Background(), 0)
	if !errors.Is(err, drepo.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
