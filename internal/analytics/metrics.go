package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"estatepulse/server/internal/models"
)

// OccupancyRate returns occupiedUnits/totalUnits as a percentage rounded to
// two decimal places, half up. A portfolio with zero units is 0% occupied.
func OccupancyRate(totalUnits, occupiedUnits int) (float64, error) {
	if totalUnits < 0 {
		return 0, &InvalidInputError{Field: "totalUnits", Reason: "must not be negative"}
	}
	if occupiedUnits < 0 {
		return 0, &InvalidInputError{Field: "occupiedUnits", Reason: "must not be negative"}
	}
	if totalUnits == 0 {
		return 0, nil
	}
	rate := decimal.NewFromInt(int64(occupiedUnits)).
		Div(decimal.NewFromInt(int64(totalUnits))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return rate.InexactFloat64(), nil
}

// LeaseDaysRemaining returns the whole days left until endDate, floored at 0.
func LeaseDaysRemaining(endDate, today time.Time) int {
	days := int(truncateDay(endDate).Sub(truncateDay(today)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsLeaseActive reports whether today falls inside the lease window,
// boundaries included.
func IsLeaseActive(startDate, endDate, today time.Time) bool {
	d := truncateDay(today)
	return !d.Before(truncateDay(startDate)) && !d.After(truncateDay(endDate))
}

// IsMaintenanceOverdue reports whether a scheduled request slipped past its
// date without reaching a terminal status.
func IsMaintenanceOverdue(scheduledDate *time.Time, status models.RequestStatus, now time.Time) bool {
	return scheduledDate != nil && scheduledDate.Before(now) && !status.Terminal()
}

// TenantRiskLevel classifies a tenant from payment reliability and lease
// expiry proximity. Expiry proximity can only raise the score-derived tier,
// never lower it.
func TenantRiskLevel(paymentScore float64, daysUntilLeaseExpiry int) models.RiskLevel {
	scoreTier := models.RiskLow
	switch {
	case paymentScore < 50:
		scoreTier = models.RiskHigh
	case paymentScore < 75:
		scoreTier = models.RiskMedium
	}

	expiryTier := models.RiskLow
	switch {
	case daysUntilLeaseExpiry >= 0 && daysUntilLeaseExpiry <= 30:
		expiryTier = models.RiskHigh
	case daysUntilLeaseExpiry >= 0 && daysUntilLeaseExpiry <= 60:
		expiryTier = models.RiskMedium
	}

	return maxRisk(scoreTier, expiryTier)
}

func maxRisk(a, b models.RiskLevel) models.RiskLevel {
	rank := map[models.RiskLevel]int{models.RiskLow: 0, models.RiskMedium: 1, models.RiskHigh: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// roundMoney rounds a money amount to two decimal places, half up, the same
// way occupancy percentages are rounded.
func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
