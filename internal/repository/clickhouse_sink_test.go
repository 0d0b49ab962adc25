package repository

import (
	"context"
	"strings"
	"testing"

	"InvestScout/internal/domain/models"
)

func TestSchemaIsIdempotent(t *testing.T) {
	stmts := Schema("investscout")
	if len(stmts) != 2 {
		t.Fatalf("expected database + table statements, got %d", len(stmts))
	}
	for _, stmt := range stmts {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("statement must be re-runnable:\n%s", stmt)
		}
	}
	if !strings.Contains(stmts[1], "recommendation_log") {
		t.Errorf("table statement missing table name:\n%s", stmts[1])
	}
	if !strings.Contains(stmts[1], "ORDER BY (class, generated_at)") {
		t.Errorf("table statement missing sort key:\n%s", stmts[1])
	}
}

func TestInsertTargetsConfiguredDatabase(t *testing.T) {
	s := &ClickHouseSink{database: "mydb"}
	q := s.insertQuery([]string{"(?)"})
	if !strings.Contains(q, "INSERT INTO mydb.recommendation_log") {
		t.Errorf("insert must hit the database the schema was created in:\n%s", q)
	}
}

func TestStoreSkipsEmptySet(t *testing.T) {
	// An empty set never touches the connection, so a zero-value sink works.
	s := &ClickHouseSink{}
	if err := s.Store(context.Background(), &models.RecommendationSet{Class: "bonds"}); err != nil {
		t.Fatalf("empty set should be a no-op, got %v", err)
	}
}
