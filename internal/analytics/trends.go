package analytics

import (
	"fmt"
	"time"

	"estatepulse/server/internal/models"
)

// Observation is one source record reduced to the date and value relevant for
// a trend metric.
type Observation struct {
	Date  time.Time
	Value float64
}

// SeriesPoint is one dated bucket of a trend series.
type SeriesPoint struct {
	Date  time.Time
	Label string
	Value float64
}

// Reduce selects how observations sharing a bucket are combined.
type Reduce int

const (
	ReduceSum Reduce = iota
	ReduceMean
)

// Series buckets observations by timeframe into a chronologically ascending
// sequence covering [from, to]. Every period in the range appears exactly
// once; periods with no contributing observations carry value 0 so charts
// never skip empty stretches.
func Series(obs []Observation, tf models.Timeframe, from, to time.Time, reduce Reduce) ([]SeriesPoint, error) {
	if err := validateTimeframe(tf); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, &InvalidInputError{Field: "dateRange", Reason: "end date precedes start date"}
	}

	start := periodStart(from, tf)
	end := periodStart(to, tf)

	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, o := range obs {
		bucket := periodStart(o.Date, tf)
		if bucket.Before(start) || bucket.After(end) {
			continue
		}
		sums[bucket] += o.Value
		counts[bucket]++
	}

	var points []SeriesPoint
	for p := start; !p.After(end); p = nextPeriod(p, tf) {
		value := sums[p]
		if reduce == ReduceMean && counts[p] > 0 {
			value = sums[p] / float64(counts[p])
		}
		points = append(points, SeriesPoint{
			Date:  p,
			Label: periodLabel(p, tf),
			Value: roundMoney(value),
		})
	}
	return points, nil
}

// ChartPoints flattens a series for the dashboard chart DTOs.
func ChartPoints(points []SeriesPoint) []models.ChartPoint {
	out := make([]models.ChartPoint, 0, len(points))
	for _, p := range points {
		out = append(out, models.ChartPoint{Label: p.Label, Value: p.Value})
	}
	return out
}

// RentObservations maps each lease to its start date and monthly rent.
func RentObservations(leases []models.LeaseRecord) []Observation {
	obs := make([]Observation, 0, len(leases))
	for _, l := range leases {
		obs = append(obs, Observation{Date: l.StartDate, Value: l.MonthlyRent})
	}
	return obs
}

// MaintenanceCostObservations maps each request to its creation date and
// cost, preferring the actual cost once known.
func MaintenanceCostObservations(reqs []models.MaintenanceRequestRecord) []Observation {
	obs := make([]Observation, 0, len(reqs))
	for _, r := range reqs {
		obs = append(obs, Observation{Date: r.CreatedAt, Value: requestCost(r)})
	}
	return obs
}

// ValuationObservations maps each property to its creation date and asset value.
func ValuationObservations(props []models.PropertyRecord) []Observation {
	obs := make([]Observation, 0, len(props))
	for _, p := range props {
		obs = append(obs, Observation{Date: p.CreatedAt, Value: p.AssetValue})
	}
	return obs
}

// EsgObservations maps each property to its creation date and ESG score.
func EsgObservations(props []models.PropertyRecord) []Observation {
	obs := make([]Observation, 0, len(props))
	for _, p := range props {
		obs = append(obs, Observation{Date: p.CreatedAt, Value: p.EsgScore})
	}
	return obs
}

// OccupancyObservations maps each property to its creation date and occupancy
// rate, deriving the rate from unit counts when the stored one is absent.
func OccupancyObservations(props []models.PropertyRecord) ([]Observation, error) {
	obs := make([]Observation, 0, len(props))
	for _, p := range props {
		rate, err := propertyOccupancy(p)
		if err != nil {
			return nil, err
		}
		obs = append(obs, Observation{Date: p.CreatedAt, Value: rate})
	}
	return obs, nil
}

// MetricObservations resolves the observation set and reduction for one of
// the forecastable metrics.
func MetricObservations(metric models.ForecastMetric, input PortfolioInput) ([]Observation, Reduce, error) {
	switch metric {
	case models.MetricRent:
		return RentObservations(input.Leases), ReduceSum, nil
	case models.MetricValue:
		return ValuationObservations(input.Properties), ReduceSum, nil
	case models.MetricOccupancy:
		obs, err := OccupancyObservations(input.Properties)
		return obs, ReduceMean, err
	case models.MetricEsg:
		return EsgObservations(input.Properties), ReduceMean, nil
	default:
		return nil, 0, &InvalidInputError{Field: "metric", Reason: fmt.Sprintf("unknown metric %q", metric)}
	}
}

func validateTimeframe(tf models.Timeframe) error {
	switch tf {
	case models.Monthly, models.Quarterly, models.Yearly:
		return nil
	default:
		return &InvalidInputError{Field: "timeframe", Reason: fmt.Sprintf("unknown timeframe %q", tf)}
	}
}

func periodStart(t time.Time, tf models.Timeframe) time.Time {
	switch tf {
	case models.Quarterly:
		quarter := (int(t.Month()) - 1) / 3
		return time.Date(t.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC)
	case models.Yearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

func nextPeriod(t time.Time, tf models.Timeframe) time.Time {
	switch tf {
	case models.Quarterly:
		return t.AddDate(0, 3, 0)
	case models.Yearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

func periodLabel(t time.Time, tf models.Timeframe) string {
	switch tf {
	case models.Quarterly:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	case models.Yearly:
		return fmt.Sprintf("%d", t.Year())
	default:
		return t.Format("2006-01")
	}
}

func requestCost(r models.MaintenanceRequestRecord) float64 {
	if r.ActualCost != nil {
		return *r.ActualCost
	}
	if r.EstimatedCost != nil {
		return *r.EstimatedCost
	}
	return 0
}

// propertyOccupancy prefers the stored rate and otherwise derives it from the
// unit counts.
func propertyOccupancy(p models.PropertyRecord) (float64, error) {
	if p.OccupancyRate != nil {
		return *p.OccupancyRate, nil
	}
	return OccupancyRate(p.TotalUnits, p.OccupiedUnits)
}
