package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/config"
	xhttp "InvestScout/pkg/http"
	xlogger "InvestScout/pkg/logger"
)

// Client implements a MarketProvider backed by the Yahoo Finance chart API.
// Quotes are fetched one symbol at a time with a fixed delay between calls;
// the pacing is deliberate serialization against provider throttling, not a
// parallelization opportunity.
type Client struct {
	baseURL    string
	symbols    []string
	fetchDelay time.Duration
	http       *xhttp.Client
	logger     *xlogger.Logger
}

// New creates a new Yahoo Finance equity provider.
func New(cfg *config.Config, lgr *xlogger.Logger) *Client {
	return &Client{
		baseURL:    cfg.Providers.Yahoo.BaseURL,
		symbols:    cfg.Providers.Stocks.Symbols,
		fetchDelay: cfg.Providers.Stocks.FetchDelay,
		http:       xhttp.NewClient(xhttp.WithTimeout(cfg.Providers.Timeout)),
		logger:     lgr,
	}
}

func (c *Client) Name() string            { return "yahoo" }
func (c *Client) Class() drepo.AssetClass { return drepo.ClassStocks }

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				LongName           string  `json:"longName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketVol   float64 `json:"regularMarketVolume"`
				MarketCap          float64 `json:"marketCap"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// Fetch retrieves quotes for the configured universe. A failed symbol is
// skipped; a rate-limit response suspends the remaining symbols for this
// run and returns whatever was collected so far.
func (c *Client) Fetch(ctx context.Context, limit int) ([]models.InstrumentRecord, error) {
	symbols := c.symbols
	if limit > 0 && limit < len(symbols) {
		symbols = symbols[:limit]
	}

	records := make([]models.InstrumentRecord, 0, len(symbols))
	for i, symbol := range symbols {
		if i > 0 {
			select {
			case <-time.After(c.fetchDelay):
			case <-ctx.Done():
				return records, ctx.Err()
			}
		}

		rec, err := c.fetchSymbol(ctx, symbol)
		if err != nil {
			if drepo.IsRateLimited(err) {
				c.logger.Warn("yahoo rate limited, suspending remaining symbols",
					xlogger.String("symbol", symbol), xlogger.Int("collected", len(records)))
				if len(records) == 0 {
					return nil, err
				}
				return records, nil
			}
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return records, err
			}
			c.logger.Debug("yahoo: skipping symbol", xlogger.String("symbol", symbol), xlogger.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) fetchSymbol(ctx context.Context, symbol string) (models.InstrumentRecord, error) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.baseURL, symbol),
		Headers: map[string]string{
			"User-Agent": "InvestScout/1.0",
		},
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"range":    {"5d"},
		},
	})
	if err != nil {
		return models.InstrumentRecord{}, fmt.Errorf("yahoo request %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		return models.InstrumentRecord{}, drepo.StatusError(resp.StatusCode)
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return models.InstrumentRecord{}, drepo.ErrMalformedResponse
	}
	if len(cr.Chart.Result) == 0 {
		return models.InstrumentRecord{}, drepo.ErrMalformedResponse
	}

	result := cr.Chart.Result[0]
	closes := collectCloses(result.Indicators.Quote)

	price := result.Meta.RegularMarketPrice
	if len(closes) > 0 {
		price = closes[len(closes)-1]
	}
	if price <= 0 {
		return models.InstrumentRecord{}, drepo.ErrMalformedResponse
	}

	change24h := 0.0
	if len(closes) > 1 && closes[len(closes)-2] > 0 {
		prev := closes[len(closes)-2]
		change24h = (price - prev) / prev * 100
	}
	// A 5-day range approximates the weekly change; 0 when unavailable.
	change7d := 0.0
	if len(closes) > 2 && closes[0] > 0 {
		change7d = (price - closes[0]) / closes[0] * 100
	}

	name := result.Meta.LongName
	if name == "" {
		name = symbol
	}

	return models.InstrumentRecord{
		ID:             strings.ToLower(symbol),
		Symbol:         strings.ToUpper(symbol),
		Name:           name,
		CurrentPrice:   price,
		PriceChange24h: change24h,
		PriceChange7d:  change7d,
		Volume24h:      result.Meta.RegularMarketVol,
		MarketCap:      result.Meta.MarketCap,
	}, nil
}

func collectCloses(quotes []struct {
	Close []*float64 `json:"close"`
}) []float64 {
	if len(quotes) == 0 {
		return nil
	}
	closes := make([]float64, 0, len(quotes[0].Close))
	for _, c := range quotes[0].Close {
		if c != nil && *c > 0 {
			closes = append(closes, *c)
		}
	}
	return closes
}
