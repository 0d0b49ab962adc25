package coinpaprika

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/config"
	xhttp "InvestScout/pkg/http"
	xlogger "InvestScout/pkg/logger"
)

// Client implements a MarketProvider backed by the CoinPaprika tickers API.
// It is the fallback crypto source behind CoinGecko.
type Client struct {
	baseURL string
	limit   int
	http    *xhttp.Client
	logger  *xlogger.Logger
}

// New creates a new CoinPaprika crypto provider.
func New(cfg *config.Config, lgr *xlogger.Logger) *Client {
	return &Client{
		baseURL: cfg.Providers.Coinpaprika.BaseURL,
		limit:   cfg.Providers.Coinpaprika.Limit,
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Providers.Timeout)),
		logger:  lgr,
	}
}

func (c *Client) Name() string            { return "coinpaprika" }
func (c *Client) Class() drepo.AssetClass { return drepo.ClassCrypto }

type tickerRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Rank   int    `json:"rank"`
	Quotes struct {
		USD struct {
			Price           *float64 `json:"price"`
			Volume24h       *float64 `json:"volume_24h"`
			MarketCap       *float64 `json:"market_cap"`
			PercentChange24 *float64 `json:"percent_change_24h"`
			PercentChange7d *float64 `json:"percent_change_7d"`
		} `json:"USD"`
	} `json:"quotes"`
}

// Fetch retrieves tickers ranked by market cap, truncated to limit.
func (c *Client) Fetch(ctx context.Context, limit int) ([]models.InstrumentRecord, error) {
	if limit <= 0 || limit > c.limit {
		limit = c.limit
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/tickers",
		QueryParams: map[string][]string{
			"quotes": {"USD"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("coinpaprika request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		return nil, drepo.StatusError(resp.StatusCode)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, drepo.ErrMalformedResponse
	}

	records := make([]models.InstrumentRecord, 0, limit)
	for _, rm := range raw {
		if len(records) >= limit {
			break
		}
		var row tickerRow
		if err := json.Unmarshal(rm, &row); err != nil {
			c.logger.Debug("coinpaprika: skipping malformed row", xlogger.Error(err))
			continue
		}
		q := row.Quotes.USD
		price := deref(q.Price)
		if price <= 0 || row.Symbol == "" {
			continue
		}
		records = append(records, models.InstrumentRecord{
			ID:             row.ID,
			Symbol:         strings.ToUpper(row.Symbol),
			Name:           row.Name,
			CurrentPrice:   price,
			PriceChange24h: deref(q.PercentChange24),
			PriceChange7d:  deref(q.PercentChange7d),
			Volume24h:      deref(q.Volume24h),
			MarketCap:      deref(q.MarketCap),
			MarketCapRank:  row.Rank,
		})
	}
	return records, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
