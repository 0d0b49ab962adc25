package yahoo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
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
	cfg.Providers.Yahoo.BaseURL = baseURL
	cfg.Providers.Stocks.Symbols = symbols
	cfg.Providers.Stocks.FetchDelay = time.Millisecond
	return New(cfg, lgr)
}

func chartBody(name string, closes ...float64) string {
	parts := make([]string, len(closes))
	for i, c := range closes {
		parts[i] = fmt.Sprintf("%g", c)
	}
	return fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"longName":%q,"regularMarketPrice":%g,"regularMarketVolume":25000000,"marketCap":12000000000},
		"indicators":{"quote":[{"close":[%s]}]}
	}]}}`, name, closes[len(closes)-1], strings.Join(parts, ","))
}

func TestFetchComputesChanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/SIRI") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(chartBody("Sirius XM", 3.0, 3.1, 3.2, 3.05, 3.10)))
	}))
	defer srv.Close()

	records, err := newTestClient(t, srv.URL, "SIRI").Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Symbol != "SIRI" || r.Name != "Sirius XM" {
		t.Errorf("identity fields wrong: %+v", r)
	}
	if r.CurrentPrice != 3.10 {
		t.Errorf("price = %v, want last close 3.10", r.CurrentPrice)
	}
	want24 := (3.10 - 3.05) / 3.05 * 100
	if math.Abs(r.PriceChange24h-want24) > 0.001 {
		t.Errorf("change24h = %v, want %v", r.PriceChange24h, want24)
	}
	want7 := (3.10 - 3.0) / 3.0 * 100
	if math.Abs(r.PriceChange7d-want7) > 0.001 {
		t.Errorf("change7d = %v, want %v", r.PriceChange7d, want7)
	}
}

func TestFetchSkipsBrokenSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/BAD") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(chartBody("Nokia", 4.1, 4.2)))
	}))
	defer srv.Close()

	records, err := newTestClient(t, srv.URL, "BAD", "NOK").Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 1 || records[0].Symbol != "NOK" {
		t.Fatalf("expected only NOK, got %+v", records)
	}
}

func TestFetchRateLimitSuspendsRemaining(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(chartBody("Sirius XM", 3.0, 3.1)))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	records, err := newTestClient(t, srv.URL, "SIRI", "NOK", "AMC").Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the partial result, got %d records", len(records))
	}
	if calls != 2 {
		t.Fatalf("expected remaining symbols to be suspended after 429, got %d calls", calls)
	}
}

func TestFetchRateLimitWithNothingCollected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, "SIRI").Fetch(context.Background(), 0)
	if !errors.Is(err, drepo.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
