package bonddata

import (
	"context"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
)

// DatasetVersion identifies the curated bond snapshot below. Bump it when
// the figures are refreshed.
const DatasetVersion = "2025-01"

// Client implements a MarketProvider over a curated bond dataset. No public
// free API exposes tradable bond quotes, so the instrument set ships with
// the binary and is refreshed by hand.
type Client struct{}

// New creates the static bond provider.
func New() *Client { return &Client{} }

func (c *Client) Name() string            { return "bonddata" }
func (c *Client) Class() drepo.AssetClass { return drepo.ClassBonds }

// Fetch returns a copy of the curated dataset, truncated to limit.
func (c *Client) Fetch(_ context.Context, limit int) ([]models.InstrumentRecord, error) {
	records := dataset()
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func dataset() []models.InstrumentRecord {
	return []models.InstrumentRecord{
		{
			ID:           "us10y",
			Symbol:       "US10Y",
			Name:         "US Treasury 10-Year",
			CurrentPrice: 96.5,
			Yield:        4.25,
			Rating:       "AAA",
			Maturity:     "10Y",
			Type:         "Government",
			Volume24h:    850_000_000,
		},
		{
			ID:           "us5y",
			Symbol:       "US5Y",
			Name:         "US Treasury 5-Year",
			CurrentPrice: 97.8,
			Yield:        4.10,
			Rating:       "AAA",
			Maturity:     "5Y",
			Type:         "Government",
			Volume24h:    620_000_000,
		},
		{
			ID:           "us2y",
			Symbol:       "US2Y",
			Name:         "US Treasury 2-Year",
			CurrentPrice: 98.9,
			Yield:        4.45,
			Rating:       "AAA",
			Maturity:     "2Y",
			Type:         "Government",
			Volume24h:    710_000_000,
		},
		{
			ID:           "corp-a",
			Symbol:       "CORP-A",
			Name:         "Investment Grade Corporate A",
			CurrentPrice: 94.2,
			Yield:        5.35,
			Rating:       "A",
			Maturity:     "7Y",
			Type:         "Corporate",
			Volume24h:    280_000_000,
		},
		{
			ID:           "corp-bbb",
			Symbol:       "CORP-BBB",
			Name:         "Investment Grade Corporate BBB",
			CurrentPrice: 91.7,
			Yield:        6.10,
			Rating:       "BBB",
			Maturity:     "7Y",
			Type:         "Corporate",
			Volume24h:    190_000_000,
		},
	}
}
