package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"InvestScout/internal/domain/models"
	pkgch "InvestScout/pkg/clickhouse"
	applogger "InvestScout/pkg/logger"
)

// ClickHouseSink appends each produced recommendation to an audit table: one
// row per recommended instrument per run, so operators can inspect what was
// recommended and why after the fact.
type ClickHouseSink struct {
	db       *sql.DB
	database string
	l        *applogger.Logger
}

func NewClickHouseSink(ch *pkgch.Client, database string) *ClickHouseSink {
	return &ClickHouseSink{db: ch.DB(), database: database}
}

// SetLogger injects a structured logger.
func (s *ClickHouseSink) SetLogger(l *applogger.Logger) { s.l = l }

// Schema returns the idempotent DDL for the audit table.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.recommendation_log (
            generated_at DateTime,
            class        LowCardinality(String),
            origin       LowCardinality(String),
            position     UInt8,
            symbol       String,
            name         String,
            price        Float64,
            change_24h   Float64,
            volume_24h   Float64,
            market_cap   Float64,
            score        Float64,
            reasons      String,
            risks        String
        ) ENGINE = MergeTree()
        PARTITION BY toYYYYMM(generated_at)
        ORDER BY (class, generated_at)`, database),
	}
}

func (s *ClickHouseSink) Store(ctx context.Context, set *models.RecommendationSet) error {
	if len(set.Items) == 0 {
		return nil
	}

	start := time.Now()
	values := make([]string, 0, len(set.Items))
	args := make([]interface{}, 0, len(set.Items)*13)
	for i, item := range set.Items {
		r := item.Instrument
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			set.GeneratedAt,
			set.Class,
			string(set.Origin),
			uint8(i+1),
			r.Symbol,
			r.Name,
			r.CurrentPrice,
			r.PriceChange24h,
			r.Volume24h,
			r.MarketCap,
			r.InvestmentScore,
			strings.Join(item.Reasons, "; "),
			strings.Join(item.Risks, "; "),
		)
	}

	if _, err := s.db.ExecContext(ctx, s.insertQuery(values), args...); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse recommendation insert error",
				applogger.String("class", set.Class),
				applogger.Int("rows", len(set.Items)),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert recommendations: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse recommendation insert ok",
			applogger.String("class", set.Class),
			applogger.Int("rows", len(set.Items)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// insertQuery targets the same database the schema was created in.
func (s *ClickHouseSink) insertQuery(values []string) string {
	return fmt.Sprintf(`INSERT INTO %s.recommendation_log
        (generated_at, class, origin, position, symbol, name, price, change_24h, volume_24h, market_cap, score, reasons, risks)
        VALUES %s`, s.database, strings.Join(values, ","))
}

func (s *ClickHouseSink) Close() error {
	return nil // pool is managed by pkg/clickhouse
}
