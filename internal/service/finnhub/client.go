package finnhub

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

// Client implements a MarketProvider backed by the Finnhub quote API. It is
// the fallback equity source behind Yahoo. Quotes carry no volume or market
// cap, so those fields stay zero and score as missing.
type Client struct {
	baseURL    string
	apiKey     string
	symbols    []string
	fetchDelay time.Duration
	http       *xhttp.Client
	logger     *xlogger.Logger
}

// New creates a new Finnhub equity provider.
func New(cfg *config.Config, lgr *xlogger.Logger) *Client {
	return &Client{
		baseURL:    cfg.Providers.Finnhub.BaseURL,
		apiKey:     cfg.Providers.Finnhub.APIKey,
		symbols:    cfg.Providers.Stocks.Symbols,
		fetchDelay: cfg.Providers.Stocks.FetchDelay,
		http:       xhttp.NewClient(xhttp.WithTimeout(cfg.Providers.Timeout)),
		logger:     lgr,
	}
}

func (c *Client) Name() string            { return "finnhub" }
func (c *Client) Class() drepo.AssetClass { return drepo.ClassStocks }

type quoteRow struct {
	Current       float64 `json:"c"`
	ChangePercent float64 `json:"dp"`
	PrevClose     float64 `json:"pc"`
}

// Fetch retrieves one quote per configured symbol with a fixed delay
// between calls. A failed symbol is skipped; a rate-limit response
// suspends the remaining symbols for this run.
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

		rec, err := c.fetchQuote(ctx, symbol)
		if err != nil {
			if drepo.IsRateLimited(err) {
				c.logger.Warn("finnhub rate limited, suspending remaining symbols",
					xlogger.String("symbol", symbol), xlogger.Int("collected", len(records)))
				if len(records) == 0 {
					return nil, err
				}
				return records, nil
			}
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return records, err
			}
			c.logger.Debug("finnhub: skipping symbol", xlogger.String("symbol", symbol), xlogger.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) fetchQuote(ctx context.Context, symbol string) (models.InstrumentRecord, error) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/quote",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"token":  {c.apiKey},
		},
	})
	if err != nil {
		return models.InstrumentRecord{}, fmt.Errorf("finnhub request %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		return models.InstrumentRecord{}, drepo.StatusError(resp.StatusCode)
	}

	var q quoteRow
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return models.InstrumentRecord{}, drepo.ErrMalformedResponse
	}
	// Finnhub returns zeros for unknown symbols instead of an error.
	if q.Current <= 0 {
		return models.InstrumentRecord{}, drepo.ErrMalformedResponse
	}

	return models.InstrumentRecord{
		ID:             strings.ToLower(symbol),
		Symbol:         strings.ToUpper(symbol),
		Name:           symbol,
		CurrentPrice:   q.Current,
		PriceChange24h: q.ChangePercent,
	}, nil
}
