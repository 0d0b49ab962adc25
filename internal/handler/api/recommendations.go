package api

import (
	"time"

	models "InvestScout/internal/domain/models"
	domrepo "InvestScout/internal/domain/repository"
	"InvestScout/internal/usecase"
	xhttp "InvestScout/pkg/http"
	xlogger "InvestScout/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RecommendationsHandler exposes the recommendation pipeline over HTTP.
type RecommendationsHandler struct {
	logger      *xlogger.Logger
	recommender *usecase.Recommender
	digest      *usecase.Digest
	started     time.Time
}

func NewRecommendationsHandler(logger *xlogger.Logger, recommender *usecase.Recommender, digest *usecase.Digest) *RecommendationsHandler {
	return &RecommendationsHandler{
		logger:      logger,
		recommender: recommender,
		digest:      digest,
		started:     time.Now(),
	}
}

func (h *RecommendationsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	g := e.Group("/api")
	g.GET("/recommendations", h.Recommendations)
	g.POST("/digest", h.Digest)
}

func (h *RecommendationsHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"service": "investscout",
		"classes": domrepo.AllClasses(),
	})
}

func (h *RecommendationsHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":    "ok",
		"uptime_s":  int(time.Since(h.started).Seconds()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *RecommendationsHandler) Recommendations(c echo.Context) error {
	req := &models.RecommendationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	class := domrepo.NormalizeClass(req.Class)

	set := h.recommender.TopRecommendations(c.Request().Context(), class, req.Limit)
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, set)
}

// Digest triggers an out-of-schedule digest run.
func (h *RecommendationsHandler) Digest(c echo.Context) error {
	req := &models.DigestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	classes := make([]domrepo.AssetClass, 0, len(req.Classes))
	for _, s := range req.Classes {
		if cl := domrepo.NormalizeClass(s); cl != "" {
			classes = append(classes, cl)
		}
	}
	if len(classes) == 0 {
		classes = domrepo.AllClasses()
	}

	if err := h.digest.Run(c.Request().Context(), classes); err != nil {
		h.logger.Error("digest run error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"delivered": true,
		"classes":   classes,
	})
}
