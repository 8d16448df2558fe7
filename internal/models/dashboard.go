package models

import "time"

// ChartPoint is a single (label, value) point for chart consumption.
type ChartPoint struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Category string  `json:"category,omitempty"`
}

// PropertyPerformance is one ranked entry in the performance lists.
type PropertyPerformance struct {
	PropertyID        int64   `json:"property_id"`
	PropertyName      string  `json:"property_name"`
	OccupancyRate     float64 `json:"occupancy_rate"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	EsgScore          float64 `json:"esg_score"`
	CompositeScore    float64 `json:"composite_score"`
	PerformanceRating string  `json:"performance_rating"`
}

type EsgSummary struct {
	AverageScore             float64 `json:"average_score"`
	GreenCertifiedProperties int     `json:"green_certified_properties"`
}

// KpiSnapshot is the portfolio-wide dashboard view. It is recomputed from the
// current record set on every request and never persisted.
type KpiSnapshot struct {
	// Portfolio overview
	TotalProperties      int     `json:"total_properties"`
	TotalUnits           int     `json:"total_units"`
	OccupiedUnits        int     `json:"occupied_units"`
	OverallOccupancyRate float64 `json:"overall_occupancy_rate"`
	TotalRentalIncome    float64 `json:"total_rental_income"`
	TotalAssetValue      float64 `json:"total_asset_value"`
	AverageEsgScore      float64 `json:"average_esg_score"`

	// Financial metrics
	MonthlyRevenue        float64 `json:"monthly_revenue"`
	YearToDateRevenue     float64 `json:"year_to_date_revenue"`
	AverageRentPerUnit    float64 `json:"average_rent_per_unit"`
	TotalMaintenanceCosts float64 `json:"total_maintenance_costs"`
	NetOperatingIncome    float64 `json:"net_operating_income"`

	// Operational counters
	ActiveTenants              int `json:"active_tenants"`
	LeasesExpiringThisMonth    int `json:"leases_expiring_this_month"`
	LeasesExpiringSoon         int `json:"leases_expiring_soon"`
	PendingMaintenanceRequests int `json:"pending_maintenance_requests"`
	UrgentMaintenanceRequests  int `json:"urgent_maintenance_requests"`
	OverdueMaintenanceRequests int `json:"overdue_maintenance_requests"`

	// Trailing-year trend series
	OccupancyTrend       []ChartPoint `json:"occupancy_trend"`
	RevenueTrend         []ChartPoint `json:"revenue_trend"`
	EsgTrend             []ChartPoint `json:"esg_trend"`
	MaintenanceCostTrend []ChartPoint `json:"maintenance_cost_trend"`

	// Performance rankings
	TopPerformingProperties   []PropertyPerformance `json:"top_performing_properties"`
	UnderperformingProperties []PropertyPerformance `json:"underperforming_properties"`

	EsgSummary EsgSummary `json:"esg_summary"`

	LastUpdated time.Time `json:"last_updated"`
}

// GeoSummary describes where the portfolio sits on the map.
type GeoSummary struct {
	PropertyCount   int     `json:"property_count"`
	LocatedCount    int     `json:"located_count"`
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	MinLatitude     float64 `json:"min_latitude"`
	MaxLatitude     float64 `json:"max_latitude"`
	MinLongitude    float64 `json:"min_longitude"`
	MaxLongitude    float64 `json:"max_longitude"`
}
