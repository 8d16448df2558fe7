package api

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estatepulse/server/config"
	"estatepulse/server/internal/analytics"
	"estatepulse/server/internal/cache"
	"estatepulse/server/internal/database"
	"estatepulse/server/internal/ingest"
	"estatepulse/server/internal/models"
)

type Handler struct {
	db     *database.Database
	logger *logrus.Logger
	cfg    *config.Config
	cache  *cache.SnapshotCache
	queue  *ingest.RecordQueue
}

type DateRange struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type ImportRequest struct {
	Properties []*models.PropertyRecord `json:"properties" binding:"required"`
}

func NewHandler(db *database.Database, cfg *config.Config, queue *ingest.RecordQueue, snapshots *cache.SnapshotCache, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if snapshots == nil {
		snapshots = cache.NewSnapshotCache(logger)
	}

	return &Handler{
		db:     db,
		logger: logger,
		cfg:    cfg,
		cache:  snapshots,
		queue:  queue,
	}
}

// GetKpiSnapshot computes the portfolio-wide KPI snapshot, including the
// performance rankings and trailing-year trend series.
func (h *Handler) GetKpiSnapshot(c *gin.Context) {
	var dateRange DateRange
	if err := c.ShouldBindQuery(&dateRange); err != nil {
		h.logger.WithError(err).Error("Failed to parse date range")
	}
	city := c.Query("city")

	limit := h.cfg.Analytics.RankingLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	input, err := h.loadPortfolio(database.Filter{
		City:      city,
		StartDate: dateRange.StartDate,
		EndDate:   dateRange.EndDate,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to load portfolio records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio records"})
		return
	}

	key := cache.Fingerprint(input, fmt.Sprintf("kpis|city=%s|range=%s..%s|limit=%d", city, dateRange.StartDate, dateRange.EndDate, limit))
	if snapshot, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, snapshot)
		return
	}

	snapshot, err := analytics.BuildKpiSnapshot(input, analytics.SnapshotOptions{
		RankingLimit:    limit,
		IncludeRankings: true,
	})
	if err != nil {
		h.respondEngineError(c, err, "Failed to build KPI snapshot")
		return
	}

	h.cache.Set(key, snapshot)
	c.JSON(http.StatusOK, snapshot)
}

// GetTrendSeries returns the bucketed historical series for one metric.
func (h *Handler) GetTrendSeries(c *gin.Context) {
	metric := models.ForecastMetric(c.Query("metric"))
	timeframe := models.Timeframe(c.DefaultQuery("timeframe", string(models.Monthly)))

	from, to, err := h.parseRange(c, -11, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := h.loadPortfolio(database.Filter{City: c.Query("city")})
	if err != nil {
		h.logger.WithError(err).Error("Failed to load portfolio records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio records"})
		return
	}

	obs, reduce, err := analytics.MetricObservations(metric, input)
	if err != nil {
		h.respondEngineError(c, err, "Failed to resolve trend metric")
		return
	}
	points, err := analytics.Series(obs, timeframe, from, to, reduce)
	if err != nil {
		h.respondEngineError(c, err, "Failed to build trend series")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metric":    metric,
		"timeframe": timeframe,
		"points":    analytics.ChartPoints(points),
	})
}

// GetForecast fits a model over the historical series for one metric and
// projects it forward with confidence intervals.
func (h *Handler) GetForecast(c *gin.Context) {
	metric := models.ForecastMetric(c.Query("metric"))
	timeframe := models.Timeframe(c.DefaultQuery("timeframe", string(models.Monthly)))

	horizon := h.cfg.Analytics.ForecastHorizon
	if raw := c.Query("horizon"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "horizon must be a positive integer"})
			return
		}
		horizon = parsed
	}

	confidence := h.cfg.Analytics.ConfidenceLevel
	if raw := c.Query("confidence"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "confidence must be an integer percentage"})
			return
		}
		confidence = parsed
	}

	from, to, err := h.parseRange(c, -23, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := h.loadPortfolio(database.Filter{City: c.Query("city")})
	if err != nil {
		h.logger.WithError(err).Error("Failed to load portfolio records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio records"})
		return
	}

	result, err := analytics.ForecastPortfolio(input, analytics.ForecastRequest{
		Metric:          metric,
		Timeframe:       timeframe,
		From:            from,
		To:              to,
		Horizon:         horizon,
		ConfidenceLevel: confidence,
		SeasonalPeriod:  c.Query("seasonality"),
	})
	if err != nil {
		h.respondEngineError(c, err, "Failed to build forecast")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGeoSummary returns the portfolio bounding box, centroid, and a GeoJSON
// layer of located properties for the map view.
func (h *Handler) GetGeoSummary(c *gin.Context) {
	properties, err := h.db.ListProperties(database.Filter{City: c.Query("city")})
	if err != nil {
		h.logger.WithError(err).Error("Failed to load properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":  analytics.GeoSummarize(properties),
		"features": analytics.GeoFeatures(properties),
	})
}

// GetAllProperties lists the raw property records.
func (h *Handler) GetAllProperties(c *gin.Context) {
	var dateRange DateRange
	if err := c.ShouldBindQuery(&dateRange); err != nil {
		h.logger.WithError(err).Error("Failed to parse date range")
	}

	properties, err := h.db.ListProperties(database.Filter{
		City:      c.Query("city"),
		StartDate: dateRange.StartDate,
		EndDate:   dateRange.EndDate,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get properties"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

// GetTenantRisk classifies every tenant by payment score and lease expiry
// proximity.
func (h *Handler) GetTenantRisk(c *gin.Context) {
	tenants, err := h.db.ListTenants(database.Filter{PropertyID: h.propertyIDParam(c)})
	if err != nil {
		h.logger.WithError(err).Error("Failed to get tenants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tenants"})
		return
	}

	now := time.Now().UTC()
	type tenantRisk struct {
		TenantID     int64            `json:"tenant_id"`
		Name         string           `json:"name"`
		PropertyID   int64            `json:"property_id"`
		DaysToExpiry int              `json:"days_to_expiry"`
		RiskLevel    models.RiskLevel `json:"risk_level"`
	}

	out := make([]tenantRisk, 0, len(tenants))
	for _, t := range tenants {
		days := analytics.LeaseDaysRemaining(t.LeaseEnd, now)
		if t.LeaseEnd.Before(now) {
			days = -1
		}
		out = append(out, tenantRisk{
			TenantID:     t.ID,
			Name:         t.Name,
			PropertyID:   t.PropertyID,
			DaysToExpiry: days,
			RiskLevel:    analytics.TenantRiskLevel(t.PaymentScore, days),
		})
	}

	c.JSON(http.StatusOK, out)
}

// ImportProperties enqueues a batch of property records for background
// import.
func (h *Handler) ImportProperties(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse import request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Properties) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import batch is empty"})
		return
	}

	if err := h.queue.Push(req.Properties); err != nil {
		h.logger.WithError(err).Error("Failed to enqueue import batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":     "accepted",
		"batch_size": len(req.Properties),
	})
}

func (h *Handler) loadPortfolio(filter database.Filter) (analytics.PortfolioInput, error) {
	properties, err := h.db.ListProperties(filter)
	if err != nil {
		return analytics.PortfolioInput{}, err
	}
	tenants, err := h.db.ListTenants(database.Filter{})
	if err != nil {
		return analytics.PortfolioInput{}, err
	}
	leases, err := h.db.ListLeases(database.Filter{})
	if err != nil {
		return analytics.PortfolioInput{}, err
	}
	requests, err := h.db.ListMaintenanceRequests(database.Filter{})
	if err != nil {
		return analytics.PortfolioInput{}, err
	}
	return analytics.PortfolioInput{
		Properties: properties,
		Tenants:    tenants,
		Leases:     leases,
		Requests:   requests,
	}, nil
}

// parseRange reads startDate/endDate query parameters, falling back to a
// window of defaultFromMonths..defaultToMonths relative to now.
func (h *Handler) parseRange(c *gin.Context, defaultFromMonths, defaultToMonths int) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, defaultFromMonths, 0)
	to := now.AddDate(0, defaultToMonths, 0)

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate %q, want 2006-01-02", raw)
		}
		from = parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate %q, want 2006-01-02", raw)
		}
		to = parsed
	}
	return from, to, nil
}

func (h *Handler) propertyIDParam(c *gin.Context) int64 {
	raw := c.Query("propertyId")
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// respondEngineError maps the analytics error taxonomy onto HTTP statuses.
// Caller faults are 400, data-shape faults are 422, everything else is 500.
func (h *Handler) respondEngineError(c *gin.Context, err error, fallback string) {
	switch err.(type) {
	case *analytics.InvalidInputError:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case *analytics.InsufficientDataError:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case *analytics.EmptyPortfolioError:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
