package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	drepo "InvestScout/internal/domain/repository"
	"InvestScout/internal/usecase"
	"InvestScout/pkg/cache"
	"InvestScout/pkg/config"
	xhttp "InvestScout/pkg/http"
	xlogger "InvestScout/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopMetrics struct{}

func (nopMetrics) RecordProviderRequest(string, string)      {}
func (nopMetrics) RecordCacheEvent(string)                   {}
func (nopMetrics) RecordPipelineLatency(string, float64)     {}
func (nopMetrics) RecordRecommendations(string, string, int) {}
func (nopMetrics) RecordDelivery(string, string)             {}
func (nopMetrics) RecordError(string)                        {}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	lgr, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.Cache.TTL = time.Minute
	cfg.Providers.RetryAttempts = 1
	cfg.Providers.RetryDelay = time.Millisecond
	cfg.Criteria.MinMarketCap = 10_000_000
	cfg.Criteria.MinVolume24h = 1_000_000
	cfg.Criteria.MaxPrice = 5
	cfg.Criteria.DailyBudget = 10
	cfg.Schedule.Timezone = "UTC"

	providers := []drepo.MarketProvider{}
	acquirer := usecase.NewAcquirer(providers, cache.NewMemoryCache(), cfg, nopMetrics{}, lgr)
	recommender := usecase.NewRecommender(acquirer,
		usecase.NewFilter(cfg), usecase.NewScorer(), usecase.NewRationale(cfg), nopMetrics{}, lgr)
	digest := usecase.NewDigest(recommender, nil, nil, cfg, nopMetrics{}, lgr)

	e := echo.New()
	NewRecommendationsHandler(lgr, recommender, digest).RegisterRoutes(e)
	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, target string, body string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp xhttp.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestEcho(t)
	rec, resp := doRequest(t, e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
}

func TestRecommendationsRequiresValidClass(t *testing.T) {
	e := newTestEcho(t)

	_, resp := doRequest(t, e, http.MethodGet, "/api/recommendations?class=forex", "")
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	_, resp = doRequest(t, e, http.MethodGet, "/api/recommendations", "")
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestRecommendationsReturnsSet(t *testing.T) {
	e := newTestEcho(t)

	rec, resp := doRequest(t, e, http.MethodGet, "/api/recommendations?class=crypto&limit=2", "")

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "private, max-age=60", rec.Header().Get(echo.HeaderCacheControl))

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "crypto", data["class"])
	// No providers are wired in the test, so the seed snapshot answers.
	assert.Equal(t, "seed", data["origin"])
	items := data["items"].([]interface{})
	assert.Len(t, items, 2)
}

func TestRecommendationsRejectsOversizedLimit(t *testing.T) {
	e := newTestEcho(t)
	_, resp := doRequest(t, e, http.MethodGet, "/api/recommendations?class=crypto&limit=9", "")
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestDigestEndpointFiltersClasses(t *testing.T) {
	e := newTestEcho(t)

	_, resp := doRequest(t, e, http.MethodPost, "/api/digest", `{"classes":["bonds"]}`)

	assert.Equal(t, http.StatusOK, resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["delivered"])
	classes := data["classes"].([]interface{})
	require.Len(t, classes, 1)
	assert.Equal(t, "bonds", classes[0])
}

func TestDigestEndpointRejectsUnknownClass(t *testing.T) {
	e := newTestEcho(t)
	_, resp := doRequest(t, e, http.MethodPost, "/api/digest", `{"classes":["forex"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}
