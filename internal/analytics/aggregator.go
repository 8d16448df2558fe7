package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"estatepulse/server/internal/models"
)

const (
	// DefaultRankingLimit caps the top/underperforming lists when the caller
	// does not supply one.
	DefaultRankingLimit = 5

	// Properties at or above this ESG score count as green certified.
	greenEsgThreshold = 75.0

	// Leases ending within this many days count as expiring soon.
	expiringSoonDays = 60
)

// Composite score weights: occupancy 40%, revenue 30%, ESG 30%.
const (
	occupancyWeight = 0.40
	revenueWeight   = 0.30
	esgWeight       = 0.30
)

// PortfolioInput is the full record set (or caller-filtered subset) the
// aggregator folds over. Records are read-only; the engine never mutates them.
type PortfolioInput struct {
	Properties []models.PropertyRecord
	Tenants    []models.TenantRecord
	Leases     []models.LeaseRecord
	Requests   []models.MaintenanceRequestRecord
}

// SnapshotOptions tunes one KPI computation.
type SnapshotOptions struct {
	// Now anchors all "today" comparisons. Zero means time.Now in UTC.
	Now time.Time

	// RankingLimit caps the performance lists. Zero means DefaultRankingLimit.
	RankingLimit int

	// IncludeRankings requests the top/underperforming lists. Ranking an
	// empty portfolio is an error; totals alone are not.
	IncludeRankings bool
}

// BuildKpiSnapshot folds the record set into a KpiSnapshot. Rate fields are
// computed from the sums, not averaged per property, so small properties do
// not skew the portfolio-wide numbers.
func BuildKpiSnapshot(input PortfolioInput, opts SnapshotOptions) (*models.KpiSnapshot, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	limit := opts.RankingLimit
	if limit == 0 {
		limit = DefaultRankingLimit
	}
	if limit < 0 {
		return nil, &InvalidInputError{Field: "rankingLimit", Reason: "must be positive"}
	}

	snapshot := &models.KpiSnapshot{LastUpdated: now}

	var totalUnits, occupiedUnits int
	income := decimal.Zero
	assetValue := decimal.Zero
	esgSum := decimal.Zero
	for _, p := range input.Properties {
		totalUnits += p.TotalUnits
		occupiedUnits += p.OccupiedUnits
		income = income.Add(decimal.NewFromFloat(p.RentalIncome))
		assetValue = assetValue.Add(decimal.NewFromFloat(p.AssetValue))
		esgSum = esgSum.Add(decimal.NewFromFloat(p.EsgScore))
		if p.EsgScore >= greenEsgThreshold {
			snapshot.EsgSummary.GreenCertifiedProperties++
		}
	}

	overallRate, err := OccupancyRate(totalUnits, occupiedUnits)
	if err != nil {
		return nil, err
	}

	snapshot.TotalProperties = len(input.Properties)
	snapshot.TotalUnits = totalUnits
	snapshot.OccupiedUnits = occupiedUnits
	snapshot.OverallOccupancyRate = overallRate
	snapshot.TotalRentalIncome = income.Round(2).InexactFloat64()
	snapshot.TotalAssetValue = assetValue.Round(2).InexactFloat64()
	if len(input.Properties) > 0 {
		avg := esgSum.Div(decimal.NewFromInt(int64(len(input.Properties)))).Round(2).InexactFloat64()
		snapshot.AverageEsgScore = avg
		snapshot.EsgSummary.AverageScore = avg
	}

	aggregateFinancials(snapshot, input, now)
	aggregateOperations(snapshot, input, now)
	if err := aggregateTrends(snapshot, input, now); err != nil {
		return nil, err
	}

	if opts.IncludeRankings {
		top, under, err := RankProperties(input.Properties, limit)
		if err != nil {
			return nil, err
		}
		snapshot.TopPerformingProperties = top
		snapshot.UnderperformingProperties = under
	}

	return snapshot, nil
}

func aggregateFinancials(snapshot *models.KpiSnapshot, input PortfolioInput, now time.Time) {
	monthly := decimal.Zero
	ytd := decimal.Zero
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, l := range input.Leases {
		rent := decimal.NewFromFloat(l.MonthlyRent)
		if IsLeaseActive(l.StartDate, l.EndDate, now) {
			monthly = monthly.Add(rent)
		}
		if months := monthsOfOverlap(l.StartDate, l.EndDate, yearStart, now); months > 0 {
			ytd = ytd.Add(rent.Mul(decimal.NewFromInt(int64(months))))
		}
	}
	snapshot.MonthlyRevenue = monthly.Round(2).InexactFloat64()
	snapshot.YearToDateRevenue = ytd.Round(2).InexactFloat64()

	if snapshot.OccupiedUnits > 0 {
		perUnit := decimal.NewFromFloat(snapshot.TotalRentalIncome).
			Div(decimal.NewFromInt(int64(snapshot.OccupiedUnits))).
			Round(2)
		snapshot.AverageRentPerUnit = perUnit.InexactFloat64()
	}

	costs := decimal.Zero
	for _, r := range input.Requests {
		costs = costs.Add(decimal.NewFromFloat(requestCost(r)))
	}
	snapshot.TotalMaintenanceCosts = costs.Round(2).InexactFloat64()
	snapshot.NetOperatingIncome = decimal.NewFromFloat(snapshot.TotalRentalIncome).
		Sub(costs).Round(2).InexactFloat64()
}

func aggregateOperations(snapshot *models.KpiSnapshot, input PortfolioInput, now time.Time) {
	for _, t := range input.Tenants {
		if IsLeaseActive(t.LeaseStart, t.LeaseEnd, now) {
			snapshot.ActiveTenants++
		}
	}
	for _, l := range input.Leases {
		if l.EndDate.Year() == now.Year() && l.EndDate.Month() == now.Month() {
			snapshot.LeasesExpiringThisMonth++
		}
		if remaining := LeaseDaysRemaining(l.EndDate, now); remaining <= expiringSoonDays && !truncateDay(l.EndDate).Before(truncateDay(now)) {
			snapshot.LeasesExpiringSoon++
		}
	}
	for _, r := range input.Requests {
		if r.Status == models.RequestPending {
			snapshot.PendingMaintenanceRequests++
		}
		if r.Priority == models.PriorityUrgent && !r.Status.Terminal() {
			snapshot.UrgentMaintenanceRequests++
		}
		if IsMaintenanceOverdue(r.ScheduledDate, r.Status, now) {
			snapshot.OverdueMaintenanceRequests++
		}
	}
}

// aggregateTrends embeds the trailing-year monthly series used by the
// dashboard charts.
func aggregateTrends(snapshot *models.KpiSnapshot, input PortfolioInput, now time.Time) error {
	from := periodStart(now, models.Monthly).AddDate(0, -11, 0)

	occObs, err := OccupancyObservations(input.Properties)
	if err != nil {
		return err
	}
	occupancy, err := Series(occObs, models.Monthly, from, now, ReduceMean)
	if err != nil {
		return err
	}
	revenue, err := Series(RentObservations(input.Leases), models.Monthly, from, now, ReduceSum)
	if err != nil {
		return err
	}
	esg, err := Series(EsgObservations(input.Properties), models.Monthly, from, now, ReduceMean)
	if err != nil {
		return err
	}
	maintenance, err := Series(MaintenanceCostObservations(input.Requests), models.Monthly, from, now, ReduceSum)
	if err != nil {
		return err
	}

	snapshot.OccupancyTrend = ChartPoints(occupancy)
	snapshot.RevenueTrend = ChartPoints(revenue)
	snapshot.EsgTrend = ChartPoints(esg)
	snapshot.MaintenanceCostTrend = ChartPoints(maintenance)
	return nil
}

// RankProperties scores every property by the weighted composite of
// occupancy, revenue normalized to the portfolio maximum, and ESG, then
// returns the top and bottom performers, each capped at limit. Ties break by
// property ID ascending.
func RankProperties(properties []models.PropertyRecord, limit int) (top, under []models.PropertyPerformance, err error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	if len(properties) == 0 {
		return nil, nil, &EmptyPortfolioError{}
	}

	maxRevenue := 0.0
	for _, p := range properties {
		if p.RentalIncome > maxRevenue {
			maxRevenue = p.RentalIncome
		}
	}

	scored := make([]models.PropertyPerformance, 0, len(properties))
	for _, p := range properties {
		occ, err := propertyOccupancy(p)
		if err != nil {
			return nil, nil, err
		}
		revenueNorm := 0.0
		if maxRevenue > 0 {
			revenueNorm = p.RentalIncome / maxRevenue * 100
		}
		composite := roundMoney(occ*occupancyWeight + revenueNorm*revenueWeight + p.EsgScore*esgWeight)
		scored = append(scored, models.PropertyPerformance{
			PropertyID:        p.ID,
			PropertyName:      p.Name,
			OccupancyRate:     occ,
			MonthlyRevenue:    p.RentalIncome,
			EsgScore:          p.EsgScore,
			CompositeScore:    composite,
			PerformanceRating: performanceRating(composite),
		})
	}

	descending := make([]models.PropertyPerformance, len(scored))
	copy(descending, scored)
	sort.Slice(descending, func(i, j int) bool {
		if descending[i].CompositeScore != descending[j].CompositeScore {
			return descending[i].CompositeScore > descending[j].CompositeScore
		}
		return descending[i].PropertyID < descending[j].PropertyID
	})

	ascending := make([]models.PropertyPerformance, len(scored))
	copy(ascending, scored)
	sort.Slice(ascending, func(i, j int) bool {
		if ascending[i].CompositeScore != ascending[j].CompositeScore {
			return ascending[i].CompositeScore < ascending[j].CompositeScore
		}
		return ascending[i].PropertyID < ascending[j].PropertyID
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	return descending[:limit], ascending[:limit], nil
}

func performanceRating(composite float64) string {
	switch {
	case composite >= 80:
		return "EXCELLENT"
	case composite >= 60:
		return "GOOD"
	case composite >= 40:
		return "AVERAGE"
	default:
		return "POOR"
	}
}

// monthsOfOverlap counts the calendar months the lease window shares with
// [windowStart, windowEnd].
func monthsOfOverlap(leaseStart, leaseEnd, windowStart, windowEnd time.Time) int {
	start := leaseStart
	if start.Before(windowStart) {
		start = windowStart
	}
	end := leaseEnd
	if end.After(windowEnd) {
		end = windowEnd
	}
	if end.Before(start) {
		return 0
	}
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}
