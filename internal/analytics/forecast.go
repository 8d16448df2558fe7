package analytics

import (
	"fmt"
	"math"
	"time"

	"estatepulse/server/internal/models"
)

const (
	// MinHistoryPoints is the fewest trend points a model can be fit over.
	MinHistoryPoints = 3

	// DefaultHorizon is the number of future periods projected when the
	// caller does not supply one.
	DefaultHorizon = 12

	// DefaultConfidenceLevel is the confidence percentage used when the
	// caller does not supply one.
	DefaultConfidenceLevel = 95

	// ModelLinearRegression names the only model family currently fit.
	ModelLinearRegression = "LINEAR_REGRESSION"

	// Slopes within this band of zero classify as STABLE.
	slopeEpsilon = 1e-6
)

// zScores maps supported confidence levels to normal-distribution quantiles.
var zScores = map[int]float64{
	90: 1.645,
	95: 1.96,
	99: 2.576,
}

// ForecastRequest configures one forecast run. Zero Horizon and
// ConfidenceLevel fall back to the defaults.
type ForecastRequest struct {
	Metric          models.ForecastMetric
	Timeframe       models.Timeframe
	From            time.Time
	To              time.Time
	Horizon         int
	ConfidenceLevel int

	// SeasonalPeriod is echoed as the seasonality classification when the
	// caller knows the series has one. No seasonal decomposition is
	// performed, so it defaults to NONE.
	SeasonalPeriod string
}

// linearModel is an ordinary-least-squares fit over (time index, value).
type linearModel struct {
	slope       float64
	intercept   float64
	r2          float64
	residualStd float64
	n           int
	meanX       float64
	sumSqX      float64
}

// ForecastPortfolio runs the full forecast pipeline over the supplied record
// snapshot: collect history, fit, project, bound, emit. Any stage failure
// aborts the whole forecast; there are no partial results.
func ForecastPortfolio(input PortfolioInput, req ForecastRequest) (*models.ForecastResult, error) {
	if req.Horizon == 0 {
		req.Horizon = DefaultHorizon
	}
	if req.Horizon < 0 {
		return nil, &InvalidInputError{Field: "horizon", Reason: "must be positive"}
	}
	if req.ConfidenceLevel == 0 {
		req.ConfidenceLevel = DefaultConfidenceLevel
	}
	if _, ok := zScores[req.ConfidenceLevel]; !ok {
		return nil, &InvalidInputError{Field: "confidenceLevel", Reason: fmt.Sprintf("unsupported level %d, want 90, 95 or 99", req.ConfidenceLevel)}
	}

	// COLLECT_HISTORY
	obs, reduce, err := MetricObservations(req.Metric, input)
	if err != nil {
		return nil, err
	}
	history, err := Series(obs, req.Timeframe, req.From, req.To, reduce)
	if err != nil {
		return nil, err
	}
	return forecastFromHistory(history, req)
}

func forecastFromHistory(history []SeriesPoint, req ForecastRequest) (*models.ForecastResult, error) {
	if len(history) < MinHistoryPoints {
		return nil, &InsufficientDataError{Points: len(history), MinRequired: MinHistoryPoints}
	}

	// FIT_MODEL
	model := fitLinear(history)

	// PROJECT
	forecasted := make([]models.ForecastPoint, 0, req.Horizon)
	intervals := make([]models.ConfidenceInterval, 0, req.Horizon)
	z := zScores[req.ConfidenceLevel]
	date := history[len(history)-1].Date
	for i := 0; i < req.Horizon; i++ {
		date = nextPeriod(date, req.Timeframe)
		x := float64(len(history) + i)
		predicted := model.intercept + model.slope*x
		forecasted = append(forecasted, models.ForecastPoint{
			Date:     date,
			Label:    periodLabel(date, req.Timeframe),
			Value:    roundMoney(predicted),
			IsActual: false,
		})

		// BOUND
		margin := z * model.residualStd * math.Sqrt(1+1/float64(model.n)+square(x-model.meanX)/model.sumSqX)
		intervals = append(intervals, models.ConfidenceInterval{
			Date:            date,
			LowerBound:      roundMoney(predicted - margin),
			UpperBound:      roundMoney(predicted + margin),
			ConfidenceLevel: float64(req.ConfidenceLevel),
		})
	}

	// EMIT
	historical := make([]models.ForecastPoint, 0, len(history))
	for _, p := range history {
		historical = append(historical, models.ForecastPoint{
			Date:     p.Date,
			Label:    p.Label,
			Value:    p.Value,
			IsActual: true,
		})
	}

	result := &models.ForecastResult{
		Metric:              req.Metric,
		Timeframe:           req.Timeframe,
		StartDate:           history[0].Date,
		EndDate:             date,
		HistoricalData:      historical,
		ForecastedData:      forecasted,
		ConfidenceIntervals: intervals,
		ForecastModel:       ModelLinearRegression,
		Accuracy:            model.accuracy(history),
		TrendDirection:      model.direction(),
		TrendStrength:       clampPercent(model.r2 * 100),
		Seasonality:         seasonality(req.SeasonalPeriod),
	}
	return result, nil
}

// fitLinear performs ordinary least squares over (index, value) pairs.
func fitLinear(history []SeriesPoint) linearModel {
	n := len(history)
	var sumX, sumY float64
	for i, p := range history {
		sumX += float64(i)
		sumY += p.Value
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sumSqX, sumXY float64
	for i, p := range history {
		dx := float64(i) - meanX
		sumSqX += dx * dx
		sumXY += dx * (p.Value - meanY)
	}

	slope := sumXY / sumSqX
	intercept := meanY - slope*meanX

	var sse, sst float64
	for i, p := range history {
		residual := p.Value - (intercept + slope*float64(i))
		sse += residual * residual
		dy := p.Value - meanY
		sst += dy * dy
	}

	r2 := 0.0
	if sst > 0 {
		r2 = 1 - sse/sst
	} else if sse == 0 {
		// Perfectly flat series: the constant model explains it exactly.
		r2 = 1
	}

	residualStd := 0.0
	if n > 2 {
		residualStd = math.Sqrt(sse / float64(n-2))
	}

	return linearModel{
		slope:       slope,
		intercept:   intercept,
		r2:          r2,
		residualStd: residualStd,
		n:           n,
		meanX:       meanX,
		sumSqX:      sumSqX,
	}
}

func (m linearModel) direction() models.TrendDirection {
	switch {
	case m.slope > slopeEpsilon:
		return models.TrendIncreasing
	case m.slope < -slopeEpsilon:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// accuracy is 1 minus the residual error normalized by the mean magnitude of
// the series, expressed as a percentage and clamped to [0, 100].
func (m linearModel) accuracy(history []SeriesPoint) float64 {
	var sse, sumAbs float64
	for i, p := range history {
		residual := p.Value - (m.intercept + m.slope*float64(i))
		sse += residual * residual
		sumAbs += math.Abs(p.Value)
	}
	rmse := math.Sqrt(sse / float64(len(history)))
	meanAbs := sumAbs / float64(len(history))
	if meanAbs == 0 {
		if rmse == 0 {
			return 100
		}
		return 0
	}
	return clampPercent((1 - rmse/meanAbs) * 100)
}

func seasonality(period string) string {
	switch models.Timeframe(period) {
	case models.Monthly, models.Quarterly, models.Yearly:
		return period
	default:
		return "NONE"
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return roundMoney(v)
}

func square(v float64) float64 { return v * v }
