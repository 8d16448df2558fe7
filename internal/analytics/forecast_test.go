package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatepulse/server/internal/models"
)

func monthlyHistory(values ...float64) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(values))
	start := date(2024, time.January, 1)
	for i, v := range values {
		d := start.AddDate(0, i, 0)
		points = append(points, SeriesPoint{Date: d, Label: d.Format("2006-01"), Value: v})
	}
	return points
}

func TestForecast_InsufficientData(t *testing.T) {
	req := ForecastRequest{Metric: models.MetricRent, Timeframe: models.Monthly, Horizon: 3, ConfidenceLevel: 95}

	var insufficient *InsufficientDataError
	_, err := forecastFromHistory(monthlyHistory(100, 110), req)
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Points)
	assert.Equal(t, MinHistoryPoints, insufficient.MinRequired)
}

func TestForecast_LinearIncreasing(t *testing.T) {
	req := ForecastRequest{Metric: models.MetricRent, Timeframe: models.Monthly, Horizon: 3, ConfidenceLevel: 95}

	result, err := forecastFromHistory(monthlyHistory(100, 110, 120), req)
	require.NoError(t, err)

	assert.Equal(t, models.TrendIncreasing, result.TrendDirection)
	assert.Greater(t, result.TrendStrength, 99.0)
	assert.Equal(t, 100.0, result.Accuracy)
	assert.Equal(t, ModelLinearRegression, result.ForecastModel)
	assert.Equal(t, "NONE", result.Seasonality)

	require.Len(t, result.ForecastedData, 3)
	assert.Equal(t, 130.0, result.ForecastedData[0].Value)
	assert.Equal(t, 140.0, result.ForecastedData[1].Value)
	assert.Equal(t, 150.0, result.ForecastedData[2].Value)
	assert.Equal(t, "2024-04", result.ForecastedData[0].Label)

	for _, p := range result.HistoricalData {
		assert.True(t, p.IsActual)
	}
	for _, p := range result.ForecastedData {
		assert.False(t, p.IsActual)
	}
}

func TestForecast_LinearDecreasing(t *testing.T) {
	req := ForecastRequest{Metric: models.MetricValue, Timeframe: models.Monthly, Horizon: 2, ConfidenceLevel: 95}

	result, err := forecastFromHistory(monthlyHistory(120, 110, 100), req)
	require.NoError(t, err)
	assert.Equal(t, models.TrendDecreasing, result.TrendDirection)
}

func TestForecast_FlatSeriesIsStable(t *testing.T) {
	req := ForecastRequest{Metric: models.MetricEsg, Timeframe: models.Monthly, Horizon: 2, ConfidenceLevel: 95}

	result, err := forecastFromHistory(monthlyHistory(70, 70, 70, 70), req)
	require.NoError(t, err)
	assert.Equal(t, models.TrendStable, result.TrendDirection)
	assert.Equal(t, 100.0, result.Accuracy)
	assert.Equal(t, 70.0, result.ForecastedData[0].Value)
}

func TestForecast_ConfidenceIntervalsBoundPredictions(t *testing.T) {
	history := monthlyHistory(100, 112, 119, 135, 141, 156)

	for _, level := range []int{90, 95, 99} {
		req := ForecastRequest{Metric: models.MetricRent, Timeframe: models.Monthly, Horizon: 6, ConfidenceLevel: level}
		result, err := forecastFromHistory(history, req)
		require.NoError(t, err)
		require.Len(t, result.ConfidenceIntervals, 6)

		for i, ci := range result.ConfidenceIntervals {
			point := result.ForecastedData[i]
			assert.LessOrEqual(t, ci.LowerBound, point.Value)
			assert.GreaterOrEqual(t, ci.UpperBound, point.Value)
			assert.Equal(t, float64(level), ci.ConfidenceLevel)
			assert.Equal(t, point.Date, ci.Date)
		}
	}
}

func TestForecast_WiderIntervalAtHigherConfidence(t *testing.T) {
	history := monthlyHistory(100, 112, 119, 135, 141, 156)

	narrow, err := forecastFromHistory(history, ForecastRequest{Metric: models.MetricRent, Timeframe: models.Monthly, Horizon: 1, ConfidenceLevel: 90})
	require.NoError(t, err)
	wide, err := forecastFromHistory(history, ForecastRequest{Metric: models.MetricRent, Timeframe: models.Monthly, Horizon: 1, ConfidenceLevel: 99})
	require.NoError(t, err)

	narrowWidth := narrow.ConfidenceIntervals[0].UpperBound - narrow.ConfidenceIntervals[0].LowerBound
	wideWidth := wide.ConfidenceIntervals[0].UpperBound - wide.ConfidenceIntervals[0].LowerBound
	assert.Greater(t, wideWidth, narrowWidth)
}

func TestForecastPortfolio_Defaults(t *testing.T) {
	input := portfolioWithMonthlyLeases(t)
	req := ForecastRequest{
		Metric:    models.MetricRent,
		Timeframe: models.Monthly,
		From:      date(2024, time.January, 1),
		To:        date(2024, time.June, 30),
	}

	result, err := ForecastPortfolio(input, req)
	require.NoError(t, err)
	assert.Len(t, result.HistoricalData, 6)
	assert.Len(t, result.ForecastedData, DefaultHorizon)
	assert.Len(t, result.ConfidenceIntervals, DefaultHorizon)
	assert.Equal(t, date(2024, time.January, 1), result.StartDate)
}

func TestForecastPortfolio_InvalidParameters(t *testing.T) {
	input := portfolioWithMonthlyLeases(t)
	var invalid *InvalidInputError

	_, err := ForecastPortfolio(input, ForecastRequest{
		Metric: models.MetricRent, Timeframe: models.Monthly,
		From: date(2024, time.January, 1), To: date(2024, time.June, 30),
		ConfidenceLevel: 85,
	})
	assert.ErrorAs(t, err, &invalid)

	_, err = ForecastPortfolio(input, ForecastRequest{
		Metric: models.MetricRent, Timeframe: models.Monthly,
		From: date(2024, time.January, 1), To: date(2024, time.June, 30),
		Horizon: -1,
	})
	assert.ErrorAs(t, err, &invalid)

	_, err = ForecastPortfolio(input, ForecastRequest{
		Metric: models.ForecastMetric("PRICE"), Timeframe: models.Monthly,
		From: date(2024, time.January, 1), To: date(2024, time.June, 30),
	})
	assert.ErrorAs(t, err, &invalid)
}

func portfolioWithMonthlyLeases(t *testing.T) PortfolioInput {
	t.Helper()
	leases := make([]models.LeaseRecord, 0, 6)
	for i := 0; i < 6; i++ {
		start := date(2024, time.January, 5).AddDate(0, i, 0)
		leases = append(leases, models.LeaseRecord{
			ID:          int64(i + 1),
			PropertyID:  1,
			MonthlyRent: 1000 + float64(i)*100,
			StartDate:   start,
			EndDate:     start.AddDate(1, 0, 0),
			Status:      models.LeaseActive,
		})
	}
	return PortfolioInput{Leases: leases}
}
