package usecase

import (
	"testing"

	drepo "InvestScout/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A degraded run must still produce a full top-3, so the seed snapshot has
// to clear the default strict criteria for every class.
func TestSeedRecordsPassDefaultCriteria(t *testing.T) {
	f := NewFilter(testConfig())
	for _, class := range drepo.AllClasses() {
		records := SeedRecords(class)
		require.NotEmpty(t, records, "class %s", class)

		eligible := f.Eligible(class, records)
		assert.GreaterOrEqual(t, len(eligible), 3, "class %s seed must fill a top-3", class)
	}
}

func TestSeedRecordsAreWellFormed(t *testing.T) {
	for _, class := range drepo.AllClasses() {
		seen := map[string]bool{}
		for _, r := range SeedRecords(class) {
			assert.Greater(t, r.CurrentPrice, 0.0, "%s/%s", class, r.Symbol)
			assert.NotEmpty(t, r.Symbol)
			assert.False(t, seen[r.Symbol], "duplicate symbol %s in %s seed", r.Symbol, class)
			seen[r.Symbol] = true
		}
	}
}

func TestSeedRecordsUnknownClass(t *testing.T) {
	assert.Nil(t, SeedRecords(drepo.AssetClass("forex")))
}
