package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/config"
	xhttp "InvestScout/pkg/http"
	xlogger "InvestScout/pkg/logger"
)

// Client implements a MarketProvider backed by the CoinGecko markets API.
type Client struct {
	baseURL string
	apiKey  string
	perPage int
	pages   int
	http    *xhttp.Client
	logger  *xlogger.Logger
}

// New creates a new CoinGecko crypto provider.
func New(cfg *config.Config, lgr *xlogger.Logger) *Client {
	return &Client{
		baseURL: cfg.Providers.Coingecko.BaseURL,
		apiKey:  cfg.Providers.Coingecko.APIKey,
		perPage: cfg.Providers.Coingecko.PerPage,
		pages:   cfg.Providers.Coingecko.Pages,
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Providers.Timeout)),
		logger:  lgr,
	}
}

func (c *Client) Name() string            { return "coingecko" }
func (c *Client) Class() drepo.AssetClass { return drepo.ClassCrypto }

// marketRow mirrors one row of /coins/markets. Nullable numerics are
// pointers so an absent field normalizes to 0, never to a fake reading.
type marketRow struct {
	ID             string   `json:"id"`
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	CurrentPrice   *float64 `json:"current_price"`
	MarketCap      *float64 `json:"market_cap"`
	MarketCapRank  *int     `json:"market_cap_rank"`
	TotalVolume    *float64 `json:"total_volume"`
	PriceChange24h *float64 `json:"price_change_percentage_24h"`
	PriceChange7d  *float64 `json:"price_change_percentage_7d_in_currency"`
}

// Fetch retrieves up to limit coins ordered by market cap. A malformed row
// is skipped, not fatal; a failed later page returns the rows collected so
// far.
func (c *Client) Fetch(ctx context.Context, limit int) ([]models.InstrumentRecord, error) {
	pages := c.pages
	perPage := c.perPage
	if limit > 0 && limit <= perPage {
		pages = 1
		perPage = limit
	}

	records := make([]models.InstrumentRecord, 0, pages*perPage)
	for page := 1; page <= pages; page++ {
		rows, err := c.fetchPage(ctx, perPage, page)
		if err != nil {
			if len(records) > 0 {
				c.logger.Warn("coingecko page failed, returning partial result",
					xlogger.Int("page", page), xlogger.Error(err))
				break
			}
			return nil, err
		}
		records = append(records, rows...)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, perPage, page int) ([]models.InstrumentRecord, error) {
	headers := map[string]string{
		"User-Agent": "InvestScout/1.0",
	}
	if c.apiKey != "" {
		headers["X-CG-API-KEY"] = c.apiKey
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     c.baseURL + "/coins/markets",
		Headers: headers,
		QueryParams: map[string][]string{
			"vs_currency":             {"usd"},
			"order":                   {"market_cap_desc"},
			"per_page":                {strconv.Itoa(perPage)},
			"page":                    {strconv.Itoa(page)},
			"sparkline":               {"false"},
			"price_change_percentage": {"24h,7d"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("coingecko request: %w", err)
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

	records := make([]models.InstrumentRecord, 0, len(raw))
	for _, rm := range raw {
		var row marketRow
		if err := json.Unmarshal(rm, &row); err != nil {
			c.logger.Debug("coingecko: skipping malformed row", xlogger.Error(err))
			continue
		}
		rec, ok := normalize(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func normalize(row marketRow) (models.InstrumentRecord, bool) {
	price := deref(row.CurrentPrice)
	if price <= 0 || row.Symbol == "" {
		return models.InstrumentRecord{}, false
	}
	rank := 0
	if row.MarketCapRank != nil {
		rank = *row.MarketCapRank
	}
	return models.InstrumentRecord{
		ID:             row.ID,
		Symbol:         strings.ToUpper(row.Symbol),
		Name:           row.Name,
		CurrentPrice:   price,
		PriceChange24h: deref(row.PriceChange24h),
		PriceChange7d:  deref(row.PriceChange7d),
		Volume24h:      deref(row.TotalVolume),
		MarketCap:      deref(row.MarketCap),
		MarketCapRank:  rank,
	}, true
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
